// Command repurpose turns a blog post into a summary, social media posts and
// an email newsletter, using either a fixed pipeline or an agent loop.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
