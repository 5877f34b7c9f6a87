package cmd

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aita/csvfile/config"
	"github.com/aita/csvfile/csvfile"
	"github.com/aita/csvfile/logging"
)

// app carries the state shared by one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	logOut  *os.File
}

func (a *app) options() []csvfile.Option {
	return []csvfile.Option{
		csvfile.WithSafeMode(a.cfg.SafeMode),
		csvfile.WithLogger(a.logger),
	}
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	a.cfg = cfg
	a.logger = logging.New(a.logOut, level)
	return nil
}

// NewRootCmd builds the csvfile command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logOut: os.Stderr,
	}
	root := &cobra.Command{
		Use:               "csvfile",
		Short:             "Read and write CSV files",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default "+config.DefaultFile+")")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("safe-mode", true, "close the file after every write")
	a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	a.v.BindPFlag(config.KeySafeMode, flags.Lookup("safe-mode"))

	root.AddCommand(
		createCmd(a),
		insertCmd(a),
		selectCmd(a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
