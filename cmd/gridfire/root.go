package main

import (
	"github.com/spf13/cobra"

	"github.com/tboudreaux/GridFire-sub000/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gridfire",
	Short: "gridfire integrates a nuclear reaction network for one zone",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a gridfire config file (yaml/json/toml), layered over the built-in defaults")
	rootCmd.AddCommand(evaluateCmd)
}
