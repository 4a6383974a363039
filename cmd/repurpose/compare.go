package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/contentloop/repurpose/workflow"
	"github.com/spf13/cobra"
)

var flagPlain bool

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run both workflows on the same post and score the outputs",
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

		report := workflow.NewComparison(gw).WithHooks(hooks).Run(cmd.Context(), post)

		markdown := report.Markdown()
		if flagPlain {
			fmt.Print(markdown)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if rendered, renderErr := renderer.Render(markdown); renderErr == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		// Terminal rendering is cosmetic; fall back to raw markdown.
		fmt.Print(markdown)
		return nil
	},
}

func init() {
	compareCmd.Flags().BoolVar(&flagPlain, "plain", false, "print raw markdown instead of rendering")
}
