package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration after merging defaults, the config file and LECTERN_* environment overrides.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if out, _ := cmd.Flags().GetString("write"); out != "" {
			if err := cfg.Save(out); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cmd.OutOrStdout().Write(data)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().String("write", "", "Write the effective configuration to this file instead of printing it")
}
