// Command viberender renders HTML and CSS documents from the command line.
package main

import "github.com/chrisuehlinger/viberender/cli"

func main() {
	cli.Execute()
}
