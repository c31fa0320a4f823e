package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/reportpipe/reportpipe/internal/config"
	"github.com/reportpipe/reportpipe/internal/log"
	"github.com/reportpipe/reportpipe/internal/model"
)

// TestNewGenerateCmd tests the generate command creation.
func TestNewGenerateCmd(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "generate" {
			t.Errorf("expected use 'generate', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has type flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("type")
		if flag == nil {
			t.Fatal("expected type flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has format flag with pdf default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("format")
		if flag == nil {
			t.Fatal("expected format flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultFormat {
			t.Errorf("expected default %q, got %q", config.DefaultFormat, flag.DefValue)
		}
	})

	t.Run("has deliver flag with download default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("deliver")
		if flag == nil {
			t.Fatal("expected deliver flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultChannel {
			t.Errorf("expected default %q, got %q", config.DefaultChannel, flag.DefValue)
		}
	})

	t.Run("has to flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("to")
		if flag == nil {
			t.Fatal("expected to flag")
		}
		if flag.Shorthand != "r" {
			t.Errorf("expected shorthand 'r', got %q", flag.Shorthand)
		}
	})

	t.Run("has dir flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("dir")
		if flag == nil {
			t.Fatal("expected dir flag")
		}
		if flag.Shorthand != "D" {
			t.Errorf("expected shorthand 'D', got %q", flag.Shorthand)
		}
	})

	t.Run("has input flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("input")
		if flag == nil {
			t.Fatal("expected input flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has history flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"no-history", "data-dir", "record-failed"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestSetupLogger tests the logger setup.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("creates logger for verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(true)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("creates logger for non-verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(false)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("logger masks credential attributes", func(t *testing.T) {
		t.Parallel()
		var buf strings.Builder
		logger := log.NewLogger(&buf, true)
		logger.Info("channel configured", "recipient", "cfo@example.com", "smtp_password", "hunter2")

		output := buf.String()
		if strings.Contains(output, "hunter2") {
			t.Error("expected smtp_password value to be masked")
		}
		if !strings.Contains(output, "cfo@example.com") {
			t.Error("expected recipient to pass through unmasked")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewGenerateCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		// Set verbose flag to true
		_ = root.PersistentFlags().Set("verbose", "true")

		// Get generate subcommand
		generateCmd, _, err := root.Find([]string{"generate"})
		if err != nil {
			t.Fatalf("failed to find generate command: %v", err)
		}

		result := getVerboseFlag(generateCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewGenerateCmd()
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if cfg.Format != config.DefaultFormat {
			t.Errorf("expected format %q, got %q", config.DefaultFormat, cfg.Format)
		}
		if cfg.Channel != config.DefaultChannel {
			t.Errorf("expected channel %q, got %q", config.DefaultChannel, cfg.Channel)
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("expected batch size %d, got %d", config.DefaultBatchSize, cfg.BatchSize)
		}
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory to be true by default")
		}
		if cfg.DataDir == "" {
			t.Error("expected non-empty DataDir")
		}
	})

	t.Run("builds config with report type", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("type", "sales")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportType != "sales" {
			t.Errorf("expected report type 'sales', got %q", cfg.ReportType)
		}
	})

	t.Run("builds config with email channel", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("deliver", "email")
		_ = cmd.Flags().Set("to", "cfo@example.com")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Channel != "email" {
			t.Errorf("expected channel 'email', got %q", cfg.Channel)
		}
		if cfg.Recipient != "cfo@example.com" {
			t.Errorf("expected recipient 'cfo@example.com', got %q", cfg.Recipient)
		}
	})

	t.Run("builds config with multiple inputs", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("input", "q1.json")
		_ = cmd.Flags().Set("input", "q2.json")
		_ = cmd.Flags().Set("input", "q3.json")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cfg.Inputs) != 3 {
			t.Errorf("expected 3 inputs, got %d", len(cfg.Inputs))
		}
	})

	t.Run("builds config with custom batch size", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("batch", "5")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BatchSize != 5 {
			t.Errorf("expected BatchSize 5, got %d", cfg.BatchSize)
		}
	})

	t.Run("no-history flag disables archiving", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("no-history", "true")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false")
		}
	})

	t.Run("data-dir flag overrides the XDG default", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("data-dir", "/tmp/reportpipe-data")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.DataDir != "/tmp/reportpipe-data" {
			t.Errorf("expected data dir '/tmp/reportpipe-data', got %q", cfg.DataDir)
		}
	})

	t.Run("record-failed flag enables failure recording", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("record-failed", "true")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.RecordFailedDeliveries {
			t.Error("expected RecordFailedDeliveries to be true")
		}
	})

	t.Run("builds config with valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "reportpipe.yaml")

		// Create a valid config file
		content := []byte(`
defaults:
  format: markdown
types:
  financial:
    format: html
    channel: email
    recipient: cfo@example.com
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("type", "financial")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.TypeConfigs == nil {
			t.Fatal("expected TypeConfigs to be loaded")
		}
		if cfg.Format != "html" {
			t.Errorf("expected format 'html' from config file, got %q", cfg.Format)
		}
		if cfg.Channel != "email" {
			t.Errorf("expected channel 'email' from config file, got %q", cfg.Channel)
		}
		if cfg.Recipient != "cfo@example.com" {
			t.Errorf("expected recipient from config file, got %q", cfg.Recipient)
		}
	})

	t.Run("explicit flags win over config file settings", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "reportpipe.yaml")

		content := []byte(`
types:
  financial:
    format: html
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("type", "financial")
		_ = cmd.Flags().Set("format", "excel")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != "excel" {
			t.Errorf("expected explicit flag to win, got %q", cfg.Format)
		}
	})

	t.Run("config file defaults apply to unknown types", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "reportpipe.yaml")

		content := []byte(`
defaults:
  format: markdown
  downloadDir: /srv/reports
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("type", "sales")
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Format != "markdown" {
			t.Errorf("expected format 'markdown' from defaults, got %q", cfg.Format)
		}
		if cfg.DownloadDir != "/srv/reports" {
			t.Errorf("expected download dir from defaults, got %q", cfg.DownloadDir)
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

		_, err := buildConfig(cmd)
		if err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		content := []byte(`{invalid yaml`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewGenerateCmd()
		_ = cmd.Flags().Set("config", configPath)

		_, err := buildConfig(cmd)
		if err == nil {
			t.Error("expected error for invalid config file")
		}
	})
}

// TestLoadPayload tests payload file decoding.
func TestLoadPayload(t *testing.T) {
	t.Parallel()

	t.Run("decodes JSON payload", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.json")
		content := []byte(`{"period": "Q1 2024", "sales": [{"product": "Widget", "amount": 100.0}]}`)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write payload: %v", err)
		}

		payload, err := loadPayload(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if payload["period"] != "Q1 2024" {
			t.Errorf("expected period 'Q1 2024', got %v", payload["period"])
		}
		if _, ok := payload["sales"].([]any); !ok {
			t.Errorf("expected sales to decode as a list, got %T", payload["sales"])
		}
	})

	t.Run("decodes YAML payload", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.yaml")
		content := []byte(`
period: Q2 2024
sales:
  - product: Widget
    amount: 100.0
`)
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write payload: %v", err)
		}

		payload, err := loadPayload(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if payload["period"] != "Q2 2024" {
			t.Errorf("expected period 'Q2 2024', got %v", payload["period"])
		}
	})

	t.Run("accepts yml extension", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.yml")
		if err := os.WriteFile(path, []byte("period: Q3 2024"), 0o600); err != nil {
			t.Fatalf("failed to write payload: %v", err)
		}

		if _, err := loadPayload(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.txt")
		if err := os.WriteFile(path, []byte("period: Q1"), 0o600); err != nil {
			t.Fatalf("failed to write payload: %v", err)
		}

		_, err := loadPayload(path)
		if err == nil {
			t.Error("expected error for unsupported extension")
		}
		if !strings.Contains(err.Error(), "unsupported payload file extension") {
			t.Errorf("expected extension error, got %v", err)
		}
	})

	t.Run("returns error for malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.json")
		if err := os.WriteFile(path, []byte(`{broken`), 0o600); err != nil {
			t.Fatalf("failed to write payload: %v", err)
		}

		if _, err := loadPayload(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadPayload(filepath.Join(t.TempDir(), "missing.json"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// TestNewService tests the service wiring.
func TestNewService(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ReportType = "sales"

	svc, err := newService(cfg, nil, setupLogger(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := svc.Deliverers().Tags()
	want := []string{"cloud", "download", "email"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d channels, got %v", len(want), tags)
	}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("expected channel %q at %d, got %q", tag, i, tags[i])
		}
	}
}

// TestOutputReport tests report output handling.
func TestOutputReport(t *testing.T) {
	renderedReport := func() model.Report {
		report := model.New("sales", "report body", map[string]string{"total": "150.00"})
		return report.Rendered("pdf", "[PDF FORMAT]\nreport body\n[END PDF]")
	}

	t.Run("writes rendered content to output file", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "out", "report.txt")

		cfg := config.NewConfig()
		cfg.OutputFile = outputPath

		if err := outputReport(cfg, renderedReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		if !strings.Contains(string(content), "[PDF FORMAT]") {
			t.Errorf("expected rendered content in output file, got %q", content)
		}
	})

	t.Run("writes JSON when requested", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "report.json")

		cfg := config.NewConfig()
		cfg.OutputFile = outputPath
		cfg.JSONOutput = true

		report := renderedReport()
		if err := outputReport(cfg, report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(content, &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded["type"] != "sales" {
			t.Errorf("expected type 'sales' in JSON, got %v", decoded["type"])
		}
		if decoded["id"] != report.ID() {
			t.Errorf("expected id %q in JSON, got %v", report.ID(), decoded["id"])
		}
	})

	t.Run("output file has secure permissions", func(t *testing.T) {
		// Skip on Windows as it doesn't support Unix-style file permissions
		if runtime.GOOS == "windows" {
			t.Skip("skipping permission test on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), "report.txt")

		cfg := config.NewConfig()
		cfg.OutputFile = outputPath

		if err := outputReport(cfg, renderedReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat output file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}
