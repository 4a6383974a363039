package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/contentloop/repurpose"
	"github.com/contentloop/repurpose/loggers"
	"github.com/contentloop/repurpose/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagPost       string
	flagModel      string
	flagBaseURL    string
	flagAPIKey     string
	flagAttempts   int
	flagIterations int
	flagLog        string
)

var rootCmd = &cobra.Command{
	Use:   "repurpose",
	Short: "Repurpose a blog post into a summary, social posts and a newsletter",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional; environment variables win when both are set.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagPost, "post", "sample_blog_post.json", "path to the blog post JSON file")
	pf.StringVar(&flagModel, "model", "", "model name (default $"+repurpose.EnvModel+")")
	pf.StringVar(&flagBaseURL, "base-url", "", "completion endpoint base URL (default $"+repurpose.EnvBaseURL+")")
	pf.StringVar(&flagAPIKey, "api-key", "", "API key (default $"+repurpose.EnvAPIKey+")")
	pf.IntVar(&flagAttempts, "attempts", 0, "reflexion attempts per fragment (default 3)")
	pf.IntVar(&flagIterations, "iterations", 0, "agent iteration budget (default 20)")
	pf.StringVar(&flagLog, "log", "console", "run trace: console, json or off")

	rootCmd.AddCommand(pipelineCmd, agentCmd, compareCmd, chatCmd)
}

func buildConfig() repurpose.Config {
	cfg := repurpose.ConfigFromEnv()
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	return cfg
}

func buildHooks() *repurpose.Hooks {
	hooks := repurpose.NewHooks()
	switch flagLog {
	case "console":
		hooks.Register(loggers.NewConsole(os.Stderr))
	case "json":
		hooks.Register(loggers.NewZerolog(zerolog.New(os.Stderr).With().Timestamp().Logger()))
	}
	return hooks
}

func buildGateway(hooks *repurpose.Hooks) (repurpose.Gateway, error) {
	gw, err := models.NewOpenAI(buildConfig())
	if err != nil {
		return nil, err
	}
	return gw.WithHooks(hooks), nil
}

func loadPost() (repurpose.BlogPost, error) {
	return repurpose.LoadBlogPost(flagPost)
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
