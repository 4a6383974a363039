package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/reflexion"
	"github.com/contentloop/repurpose/tools"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactively refine the post's summary with your own feedback",
	Long: `Generates a summary of the post, then reads feedback lines from the
terminal. Each line is sent to the improver and the revision is shown as a
unified diff. Commands: /show prints the current summary, /quit exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := loadPost()
		if err != nil {
			return err
		}

		gw, err := buildGateway(buildHooks())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		box := tools.New(gw)
		keyPoints := box.ExtractKeyPoints(ctx, post)
		content := box.GenerateSummary(ctx, keyPoints)
		if content == "" {
			return errors.New("could not generate an initial summary")
		}
		fmt.Printf("Summary of %q:\n\n%s\n\n", post.Title, content)

		rl, err := readline.New("feedback> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		improver := reflexion.NewImprover(gw)
		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt || err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			switch feedback := strings.TrimSpace(line); feedback {
			case "":
				continue
			case "/quit":
				fmt.Printf("\nFinal summary:\n\n%s\n", content)
				return nil
			case "/show":
				fmt.Printf("\n%s\n\n", content)
			default:
				revised := improver.Improve(ctx, content, feedback, repurpose.ContentTypeSummary)
				if revised == content {
					fmt.Println("(unchanged)")
					continue
				}
				printDiff(content, revised)
				content = revised
			}
		}

		fmt.Printf("\nFinal summary:\n\n%s\n", content)
		return nil
	},
}

func printDiff(before, after string) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	})
	if err != nil || diff == "" {
		fmt.Println("(unchanged)")
		return
	}
	fmt.Print(diff)
}
