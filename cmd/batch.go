package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchSegment string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the full pipeline for every contact in the segment",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		report, err := env.Orchestrator.Run(cmd.Context(), segmentID(batchSegment))
		if err != nil {
			return err
		}

		zap.L().Info("batch complete",
			zap.String("run_id", report.RunID),
			zap.Int("total", report.TotalProcessed),
			zap.Int("succeeded", report.Succeeded),
			zap.Int("failed", report.Failed),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchSegment, "segment", "", "segment id (default from config)")
	rootCmd.AddCommand(batchCmd)
}
