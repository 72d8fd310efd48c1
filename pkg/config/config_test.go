package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Interval != 30 {
		t.Errorf("expected interval 30, got %d", cfg.Interval)
	}
	if cfg.OutputDir != "output/frames/" {
		t.Errorf("expected output dir output/frames/, got %s", cfg.OutputDir)
	}
	if cfg.JPEGQuality != 95 {
		t.Errorf("expected quality 95, got %d", cfg.JPEGQuality)
	}
	if cfg.Backend != "auto" {
		t.Errorf("expected backend auto, got %s", cfg.Backend)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framegrab.yaml")
	content := `
frame_rate: 15
output_frames_folder_path: /tmp/frames
stamp: true
max_width: 640
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Interval != 15 {
		t.Errorf("expected interval 15, got %d", cfg.Interval)
	}
	if cfg.OutputDir != "/tmp/frames" {
		t.Errorf("expected /tmp/frames, got %s", cfg.OutputDir)
	}
	if !cfg.Stamp {
		t.Error("expected stamp to be enabled")
	}
	if cfg.MaxWidth != 640 {
		t.Errorf("expected max width 640, got %d", cfg.MaxWidth)
	}
	// Untouched keys keep defaults.
	if cfg.JPEGQuality != 95 {
		t.Errorf("expected default quality 95, got %d", cfg.JPEGQuality)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("frame_rate: [1, 2"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	cfg.OutputDir = "from-file"

	err := ApplyEnv(&cfg, map[string]string{
		"FRAMEGRAB_FRAME_RATE":  "5",
		"FRAMEGRAB_FFMPEG_PATH": "/opt/ffmpeg/bin/ffmpeg",
		"FRAMEGRAB_DRY_RUN":     "true",
		"UNRELATED":             "x",
	})
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Interval != 5 {
		t.Errorf("expected interval 5, got %d", cfg.Interval)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected ffmpeg path from env, got %s", cfg.FFmpegPath)
	}
	if !cfg.DryRun {
		t.Error("expected dry run from env")
	}
	if cfg.OutputDir != "from-file" {
		t.Errorf("expected unset variable to keep value, got %s", cfg.OutputDir)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	cfg := Defaults()

	err := ApplyEnv(&cfg, map[string]string{"FRAMEGRAB_FRAME_RATE": "thirty"})
	if err == nil {
		t.Error("expected error for non-numeric frame rate")
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framegrab.yaml")
	if err := os.WriteFile(path, []byte("frame_rate: 15\njpeg_quality: 80\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	t.Setenv("FRAMEGRAB_FRAME_RATE", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Interval != 7 {
		t.Errorf("expected env to win with 7, got %d", cfg.Interval)
	}
	if cfg.JPEGQuality != 80 {
		t.Errorf("expected file value 80, got %d", cfg.JPEGQuality)
	}
	if cfg.OutputDir != "output/frames/" {
		t.Errorf("expected default output dir, got %s", cfg.OutputDir)
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	valid.InputPath = "in.mp4"

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"defaults with input", func(c *Config) {}, false},
		{"missing input", func(c *Config) { c.InputPath = "" }, true},
		{"zero interval", func(c *Config) { c.Interval = 0 }, true},
		{"negative interval", func(c *Config) { c.Interval = -3 }, true},
		{"interval one", func(c *Config) { c.Interval = 1 }, false},
		{"quality zero", func(c *Config) { c.JPEGQuality = 0 }, true},
		{"quality 101", func(c *Config) { c.JPEGQuality = 101 }, true},
		{"quality 1", func(c *Config) { c.JPEGQuality = 1 }, false},
		{"negative max width", func(c *Config) { c.MaxWidth = -1 }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"empty output dir on dry run", func(c *Config) { c.OutputDir = ""; c.DryRun = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("expected ErrInvalidConfiguration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
