package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/btwebgroup/contentlab/internal/artifact"
	"github.com/btwebgroup/contentlab/internal/brief"
	"github.com/btwebgroup/contentlab/internal/config"
	"github.com/btwebgroup/contentlab/internal/llm/provider"
	"github.com/btwebgroup/contentlab/internal/pipeline"
	"github.com/btwebgroup/contentlab/internal/prompt"
	"github.com/btwebgroup/contentlab/internal/qa"
)

var runFlags struct {
	brief     string
	briefFile string
	briefURL  string
	skip      []string
	dryRun    bool
	out       string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline over a brief",
	Long: `Run the six-stage pipeline over a brief and write the final document
to the output directory.

The brief comes from exactly one of --brief, --brief-file, or --brief-url.
--brief-file takes a path to a .txt file or the name of a saved brief in
the briefs directory.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.brief, "brief", "", "Brief text, inline")
	runCmd.Flags().StringVar(&runFlags.briefFile, "brief-file", "", "Path to a brief file, or a saved brief name")
	runCmd.Flags().StringVar(&runFlags.briefURL, "brief-url", "", "URL to fetch the brief from")
	runCmd.Flags().StringSliceVar(&runFlags.skip, "skip", nil, "Stage IDs to skip (see 'contentlab stages')")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "Run without LLM calls, using canned stage replies")
	runCmd.Flags().StringVar(&runFlags.out, "out", "", "Output directory (default OUTPUT_DIR)")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if runFlags.out != "" {
		cfg.OutputDir = runFlags.out
	}
	if !runFlags.dryRun {
		if err := cfg.RequireKey(); err != nil {
			return err
		}
	}

	briefText, briefTitle, err := resolveBrief(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	for _, id := range runFlags.skip {
		if _, ok := pipeline.StageByID(id); !ok {
			return fmt.Errorf("unknown stage: %s", id)
		}
	}

	opts := []pipeline.RunnerOption{
		pipeline.WithPrompts(prompt.NewStore(cfg.PromptDir)),
		pipeline.WithRetries(cfg.LlmRetries),
		pipeline.WithSkip(runFlags.skip...),
		pipeline.WithLogger(cliLogger(cfg)),
		pipeline.WithObserver(printStageProgress),
	}
	if runFlags.dryRun {
		opts = append(opts, pipeline.WithDryRun())
	} else {
		p, err := provider.NewOpenAIProvider(
			provider.WithAPIKey(cfg.OpenaiKey),
			provider.WithModel(cfg.Model),
			provider.WithMaxOutputTokens(int64(cfg.LlmMaxTokens)),
		)
		if err != nil {
			return err
		}
		opts = append(opts, pipeline.WithProvider(p))
	}

	runner, err := pipeline.New(opts...)
	if err != nil {
		return err
	}

	res, err := runner.Run(cmd.Context(), briefText)
	if err != nil {
		return err
	}

	name := artifact.DefaultFilename
	if briefTitle != "" {
		name = artifact.Filename(time.Now().Format("2006-01-02"), briefTitle, []byte(res.RunID))
	}
	path, err := artifact.NewWriter(cfg.OutputDir).Write(res.Document, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nQA: %s\n", colorVerdict(res.Verdict))
	fmt.Fprintf(os.Stderr, "Done in %.1fs. Wrote %s\n", res.Elapsed.Seconds(), path)
	return nil
}

// resolveBrief returns the brief text and a title for artifact naming.
func resolveBrief(ctx context.Context, cfg *config.Config) (string, string, error) {
	set := 0
	for _, v := range []string{runFlags.brief, runFlags.briefFile, runFlags.briefURL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return "", "", fmt.Errorf("provide exactly one of --brief, --brief-file, --brief-url")
	}

	switch {
	case runFlags.brief != "":
		return runFlags.brief, "", nil
	case runFlags.briefURL != "":
		text, err := brief.Fetch(ctx, runFlags.briefURL, cfg.MaxFetchBytes)
		if err != nil {
			return "", "", fmt.Errorf("fetch brief: %w", err)
		}
		return text, "", nil
	default:
		if _, err := os.Stat(runFlags.briefFile); err == nil {
			text, err := brief.Fetch(ctx, runFlags.briefFile, cfg.MaxFetchBytes)
			return text, "", err
		}
		lib := brief.NewLibrary(cfg.BriefsDir)
		text, err := lib.Load(runFlags.briefFile)
		if err != nil {
			return "", "", err
		}
		return text, runFlags.briefFile, nil
	}
}

func printStageProgress(ev pipeline.StageEvent) {
	switch ev.Status {
	case pipeline.StageStarted:
		fmt.Fprintf(os.Stderr, "%s %s...\n", color.CyanString(">"), ev.Stage.Name)
	case pipeline.StageSkipped:
		fmt.Fprintf(os.Stderr, "%s %s (skipped)\n", color.YellowString("-"), ev.Stage.Name)
	case pipeline.StageDone:
		fmt.Fprintf(os.Stderr, "%s %s (%.1fs)\n", color.GreenString("ok"), ev.Stage.Name, ev.Elapsed.Seconds())
	case pipeline.StageFailed:
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("FAIL"), ev.Stage.Name, ev.Err)
	}
}

func colorVerdict(v qa.Verdict) string {
	switch v {
	case qa.VerdictPass:
		return color.GreenString(string(v))
	case qa.VerdictPassWithNotes:
		return color.YellowString(string(v))
	case qa.VerdictFail:
		return color.RedString(string(v))
	default:
		return string(v)
	}
}

// cliLogger keeps slog out of the way of the progress banner unless DEBUG.
func cliLogger(cfg *config.Config) *slog.Logger {
	if cfg.Debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
