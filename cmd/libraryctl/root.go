package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/config"
)

const version = "0.1.0"

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "libraryctl",
		Short:         "Library circulation service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().String("db-engine", "", "event store engine: memory, sqlite or postgres")
	cmd.PersistentFlags().String("sqlite-path", "", "path of the SQLite database file")
	cmd.PersistentFlags().String("postgres-dsn", "", "postgres connection string")
	cmd.PersistentFlags().String("postgres-driver", "", "postgres driver: pgxpool, sqldb or sqlx")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(newServeCommand(opts), newBootstrapCommand(opts))

	return cmd
}

var persistentFlagKeys = map[string]string{
	"db-engine":       "database.engine",
	"sqlite-path":     "database.sqlite.path",
	"postgres-dsn":    "database.postgres.dsn",
	"postgres-driver": "database.postgres.driver",
	"log-level":       "log.level",
}

// loadConfig reads the configuration. Flags that were set win over the file and the environment.
func (o *rootOptions) loadConfig(cmd *cobra.Command, flagKeys map[string]string) (config.Config, error) {
	v, err := config.NewViper(o.configFile)
	if err != nil {
		return config.Config{}, err
	}

	if err := bindFlags(v, cmd.Flags(), persistentFlagKeys); err != nil {
		return config.Config{}, err
	}

	if err := bindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return config.Config{}, err
	}

	return config.Load(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, flagKeys map[string]string) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}
