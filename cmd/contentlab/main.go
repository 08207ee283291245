package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "contentlab",
	Short: "Staged AI content-generation pipeline",
	Long: `contentlab turns a free-text client brief into reviewed draft content
through six sequential LLM stages: brief interpretation, research collection,
outline architecture, drafting, voice harmonization, and QA review.

The final document — blueprint, research, outline, draft, and QA review —
is written to the output directory as JSON.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
