// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/l3montree-dev/supplyguard/cmd/supplyguard/api"
	"github.com/l3montree-dev/supplyguard/shared"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigFilename = ".supplyguard"
	envPrefix             = "SUPPLYGUARD"
)

var cfgFile string

var rootCmd = &cobra.Command{
	SilenceUsage: true,
	Use:          "supplyguard-cli",
	Short:        "Management cli",
	Long: `The supplyguard cli manages the database of a supplyguard instance.

Use 'migrate' to apply the schema, 'seed' to load demo or custom data and 'list'
to inspect the stored entities. Flags can be provided via a ./.supplyguard config
file or environment variables (prefix SUPPLYGUARD_). The database connection is
configured with the same POSTGRES_* variables the server uses.`,
	Example: `  # apply all pending migrations
  supplyguard-cli migrate up

  # load the demo data set
  supplyguard-cli seed

  # print the suppliers
  supplyguard-cli list suppliers --page-size 50`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			l = slog.LevelInfo
		}
		initLogger(l)

		if err := shared.LoadConfig(); err != nil {
			slog.Debug("no .env file found", "err", err)
		}

		return initializeConfig(cmd)
	},
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "SupplyGuard CLI\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Version:    %s\n", api.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit:     %s\n", api.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "Built:      %s\n", api.BuildDate)
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./.supplyguard.yaml)")
}

func initLogger(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(defaultConfigFilename)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/supplyguard/")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix(envPrefix)
	// --page-size is read from SUPPLYGUARD_PAGE_SIZE
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)
	return nil
}

// bindFlags applies config file and environment values to every flag the user did not set.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", viper.Get(f.Name))) // nolint: errcheck
		}
		if err := viper.BindPFlag(f.Name, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
