package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run <contact-id>",
	Short: "Run the full pipeline for a single contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		contactID := args[0]
		result, published, err := env.Orchestrator.RunOne(cmd.Context(), contactID)
		if err != nil {
			return err
		}

		zap.L().Info("contact processed",
			zap.String("contact_id", contactID),
			zap.String("provenance", string(result.Provenance)),
			zap.Int("ideas", len(result.Ideas)),
			zap.Int("tasks", len(published)),
		)

		out := struct {
			Analysis  *model.AnalysisResult `json:"analysis"`
			Published []model.PublishedTask `json:"published"`
		}{result, published}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
