package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/btwebgroup/contentlab/internal/artifact"
	"github.com/btwebgroup/contentlab/internal/brief"
	"github.com/btwebgroup/contentlab/internal/config"
	"github.com/btwebgroup/contentlab/internal/llm/provider"
	"github.com/btwebgroup/contentlab/internal/pipeline"
	"github.com/btwebgroup/contentlab/internal/prompt"
)

type runRequest struct {
	Brief    string   `json:"brief"`
	BriefURL string   `json:"brief_url"`
	Skip     []string `json:"skip"`
	DryRun   bool     `json:"dry_run"`
}

func registerPipeline(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	app.Get("/stages", func(c *fiber.Ctx) error {
		stages, err := pipeline.Stages()
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"stages": stages})
	})

	app.Get("/briefs", func(c *fiber.Ctx) error {
		briefs, err := brief.NewLibrary(cfg.BriefsDir).List()
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if briefs == nil {
			briefs = []brief.Brief{}
		}
		return c.JSON(fiber.Map{"briefs": briefs})
	})

	app.Post("/pipeline/run", func(c *fiber.Ctx) error {
		var in runRequest
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json: " + err.Error()})
		}

		briefText := in.Brief
		if briefText == "" && in.BriefURL != "" {
			var err error
			briefText, err = brief.Fetch(c.Context(), in.BriefURL, cfg.MaxFetchBytes)
			if err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "fetch brief: " + err.Error()})
			}
		}
		if briefText == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "brief is required"})
		}

		for _, id := range in.Skip {
			if _, ok := pipeline.StageByID(id); !ok {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown stage: " + id})
			}
		}

		opts := []pipeline.RunnerOption{
			pipeline.WithPrompts(prompt.NewStore(cfg.PromptDir)),
			pipeline.WithRetries(cfg.LlmRetries),
			pipeline.WithSkip(in.Skip...),
			pipeline.WithLogger(logger),
		}
		if in.DryRun {
			opts = append(opts, pipeline.WithDryRun())
		} else {
			p, err := provider.NewOpenAIProvider(
				provider.WithAPIKey(cfg.OpenaiKey),
				provider.WithModel(cfg.Model),
				provider.WithMaxOutputTokens(int64(cfg.LlmMaxTokens)),
			)
			if err != nil {
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			opts = append(opts, pipeline.WithProvider(p))
		}

		runner, err := pipeline.New(opts...)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		res, err := runner.Run(context.Background(), briefText)
		if err != nil {
			return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}

		path, err := artifact.NewWriter(cfg.OutputDir).Write(res.Document, artifactName(res))
		if err != nil {
			logger.Error("write artifact", "run_id", res.RunID, "error", err)
		} else {
			logger.Info("artifact written", "run_id", res.RunID, "path", path)
		}

		return c.JSON(res.Document)
	})
}

func artifactName(res pipeline.Result) string {
	title, _ := res.Document["objective"].(string)
	if title == "" {
		return artifact.DefaultFilename
	}
	return artifact.Filename(time.Now().Format("2006-01-02"), title, []byte(res.RunID))
}
