package main

import (
	"fmt"
	"os"

	"github.com/contentloop/repurpose/workflow"
	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the agent loop: the model plans its own tool calls",
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

		flow := workflow.NewAgentFlow(gw).WithHooks(hooks)
		if flagIterations > 0 {
			flow.WithMaxIterations(flagIterations)
		}

		result, err := flow.Run(cmd.Context(), post)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "state: %s after %d iterations\n", result.State, result.Iterations)
		return printJSON(result.Output)
	},
}
