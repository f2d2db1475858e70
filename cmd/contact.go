package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact <contact-id>",
	Short: "Analyze a single contact without publishing any tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		result, err := env.Orchestrator.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(contactCmd)
}
