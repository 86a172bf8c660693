package cli

// Version is the application version, set at build time with
// -ldflags "-X github.com/chrisuehlinger/viberender/cli.Version=...".
var Version = "0.1.0"
