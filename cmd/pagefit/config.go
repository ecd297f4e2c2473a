package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with normalized weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dump, err := cfg.Dump()
		if err != nil {
			return err
		}
		fmt.Print(dump)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
