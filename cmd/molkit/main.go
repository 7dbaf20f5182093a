/*
 * main.go, part of molkit.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// molkit is a small command-line frontend for the library: conformer
// extraction from MacroModel searches, single-point energies and
// geometry optimizations through the wrapped engines.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  *zap.SugaredLogger
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:   "molkit",
	Short: "Energies, optimizations and conformer extraction for small molecules",
	Long: `molkit wraps external molecular-modeling programs (xtb, GULP,
Open Babel, MacroModel) behind one command line. Engine locations are
read from an optional YAML configuration file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zl, err := zap.NewProduction()
		if err != nil {
			return err
		}
		logger = zl.Sugar()
		cfg, err = LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML configuration file with engine paths")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(energyCmd)
	rootCmd.AddCommand(optCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
