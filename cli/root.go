// Package cli implements the viberender command line tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrisuehlinger/viberender/config"
	"github.com/chrisuehlinger/viberender/logging"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

// flagKeys maps command line flags onto configuration keys. A flag only
// overrides the file and environment when it is given explicitly.
var flagKeys = map[string]string{
	"log-level":      "logger.level",
	"width":          "render.width",
	"format":         "render.format",
	"debug-outlines": "render.debug_outlines",
	"concurrency":    "render.concurrency",
	"user-agent":     "render.user_agent_styles",
	"embedded":       "render.embedded_styles",
}

// NewRootCmd builds the command tree. Each call returns an independent
// tree, so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{log: zap.NewNop()})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "viberender",
		Short:         "Render HTML and CSS documents to box trees, paint commands or images.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newRenderCmd(a), newDOMCmd(), newTitleCmd(a))
	return root
}

// initialize loads configuration and builds the logger before any command
// runs.
func (a *app) initialize(cmd *cobra.Command) error {
	v := config.New(a.cfgFile)
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if err := config.Read(v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logger, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
	a.log.Debug("starting", zap.String("version", Version), zap.String("command", cmd.Name()))
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{log: zap.NewNop()}
	root := newRootCmd(a)
	if err := root.ExecuteContext(ctx); err != nil {
		if a.cfg != nil {
			a.log.Error("command failed", zap.Error(err))
		} else {
			// Configuration failed, so there is no logger yet.
			fmt.Fprintln(root.ErrOrStderr(), "viberender:", err)
		}
		_ = a.log.Sync()
		stop()
		os.Exit(1)
	}
}
