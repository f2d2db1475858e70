package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var contactsSegment string

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the contacts in the configured segment",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		contacts, err := env.Resolver.Resolve(cmd.Context(), segmentID(contactsSegment))
		if err != nil {
			return err
		}
		zap.L().Info("segment resolved", zap.Int("contacts", len(contacts)))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(contacts)
	},
}

func init() {
	contactsCmd.Flags().StringVar(&contactsSegment, "segment", "", "segment id (default from config)")
	rootCmd.AddCommand(contactsCmd)
}
