package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/viberender/dom"
	"github.com/chrisuehlinger/viberender/html"
	"github.com/chrisuehlinger/viberender/pipeline"
)

func newDOMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dom FILE",
		Short: "Print the parsed document tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), dom.Dump(html.Parse(data)))
			return err
		},
	}
}

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title FILE",
		Short: "Print the document title, or " + pipeline.UntitledTitle,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args[0])
			if err != nil {
				return err
			}
			page := pipeline.Load(pipeline.Source{Name: args[0], HTML: data}, pipeline.WithLogger(a.log))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), page.DisplayTitle())
			return err
		},
	}
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
