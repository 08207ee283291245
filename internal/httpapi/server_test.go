package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btwebgroup/contentlab/internal/config"
)

func testApp(t *testing.T) (*config.Config, *fiber.App) {
	t.Helper()
	cfg := &config.Config{
		OpenaiKey:     "sk-test",
		Model:         "gpt-4.1",
		LlmRetries:    1,
		MaxFetchBytes: 65536,
		BriefsDir:     filepath.Join(t.TempDir(), "briefs"),
		OutputDir:     filepath.Join(t.TempDir(), "output"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg, NewServer(cfg, logger)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body []byte) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestHealthz(t *testing.T) {
	_, app := testApp(t)
	code, _ := doJSON(t, app, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, code)
}

func TestStages(t *testing.T) {
	_, app := testApp(t)
	code, b := doJSON(t, app, http.MethodGet, "/stages", nil)
	require.Equal(t, http.StatusOK, code)

	var body struct {
		Stages []struct {
			ID  string `json:"id"`
			Key string `json:"key"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	require.Len(t, body.Stages, 6)
	assert.Equal(t, "brief-interpreter", body.Stages[0].ID)
	assert.Equal(t, "qa", body.Stages[5].Key)
}

func TestBriefs(t *testing.T) {
	cfg, app := testApp(t)
	require.NoError(t, os.MkdirAll(cfg.BriefsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.BriefsDir, "service-page.txt"), []byte("brief"), 0o644))

	code, b := doJSON(t, app, http.MethodGet, "/briefs", nil)
	require.Equal(t, http.StatusOK, code)

	var body struct {
		Briefs []struct {
			Name  string `json:"name"`
			Title string `json:"title"`
		} `json:"briefs"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	require.Len(t, body.Briefs, 1)
	assert.Equal(t, "Service Page", body.Briefs[0].Title)
}

func TestRun_DryRunWritesArtifact(t *testing.T) {
	cfg, app := testApp(t)
	payload := []byte(`{"brief":"AI consulting service page","dry_run":true}`)
	code, b := doJSON(t, app, http.MethodPost, "/pipeline/run", payload)
	require.Equal(t, http.StatusOK, code, string(b))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.NotEmpty(t, doc["objective"])
	assert.NotEmpty(t, doc["draft"])
	meta, ok := doc["meta"].(map[string]any)
	require.True(t, ok, "meta missing")
	assert.Equal(t, "PASS WITH NOTES", meta["qa_verdict"])

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRun_SkipStage(t *testing.T) {
	_, app := testApp(t)
	payload := []byte(`{"brief":"b","dry_run":true,"skip":["research-collector"]}`)
	code, b := doJSON(t, app, http.MethodPost, "/pipeline/run", payload)
	require.Equal(t, http.StatusOK, code, string(b))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	_, hasResearch := doc["research"]
	assert.False(t, hasResearch)
}

func TestRun_BadRequests(t *testing.T) {
	_, app := testApp(t)

	code, _ := doJSON(t, app, http.MethodPost, "/pipeline/run", []byte(`{not json`))
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, app, http.MethodPost, "/pipeline/run", []byte(`{"dry_run":true}`))
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, app, http.MethodPost, "/pipeline/run", []byte(`{"brief":"b","dry_run":true,"skip":["no-such-stage"]}`))
	assert.Equal(t, http.StatusBadRequest, code)
}
