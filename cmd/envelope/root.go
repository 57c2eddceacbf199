package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "ENVELOPE"

// SubCommand pairs a command with its own configuration. Values resolve from
// flags, then ENVELOPE_<SUB>_<FLAG> environment variables, then the --config
// file.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "envelope",
		Short: "Bounding boxes of geometry files",
		Long: `
envelope computes axis-aligned bounding boxes for GeoJSON, WKT, WKB, KML and
CSV files, compares them, filters features by box and shows them in a
terminal viewer.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr.")
	root.PersistentFlags().String("config", "",
		"Configuration file. Overridden by environment variables and flags.")

	rootConf := viper.New()
	_ = rootConf.BindPFlags(root.PersistentFlags())
	rootConf.AutomaticEnv()
	rootConf.SetEnvPrefix(envPrefix)

	subcommands := []*SubCommand{newBBoxCmd(), newRelateCmd(), newFilterCmd(), newViewCmd()}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		_ = sc.Conf.BindPFlags(sc.Cmd.Flags())
		_ = sc.Conf.BindPFlags(root.PersistentFlags())
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(rootConf.GetBool("verbose"))
		if err != nil {
			return errors.Wrap(err, "building logger")
		}
		logger = l
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return nil
		}
		logger.Debug("reading config", zap.String("file", cfg))
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				return errors.Wrapf(err, "reading config %s", cfg)
			}
		}
		return nil
	}
	return root
}
