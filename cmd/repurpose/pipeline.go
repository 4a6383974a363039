package main

import (
	"fmt"
	"os"

	"github.com/contentloop/repurpose/workflow"
	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the fixed extract -> summary -> social -> email pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := loadPost()
		if err != nil {
			return err
		}

		hooks := buildHooks()
		gw, err := buildGateway(hooks)
		if err != nil {
			return err
		}

		pipeline := workflow.NewPipeline(gw).WithHooks(hooks)
		if flagAttempts > 0 {
			pipeline.WithMaxAttempts(flagAttempts)
		}

		result := pipeline.Run(cmd.Context(), post)
		fmt.Fprintf(os.Stderr, "scores: summary=%.2f social=%.2f email=%.2f\n",
			result.Summary.Score, result.Social.Score, result.Email.Score)
		return printJSON(result.Output)
	},
}
