package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/framegrab/pkg/config"
	"github.com/user/framegrab/pkg/testclip"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"framegrab"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func countFrames(t *testing.T, dir string) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "frame*.jpg"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return len(matches)
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if !strings.Contains(stdout, "dev") {
		t.Errorf("version output = %q, want it to contain %q", stdout, "dev")
	}
}

func TestRun_MissingInput(t *testing.T) {
	code, _, _ := runCLI(t, "-Q")
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_InvalidInterval(t *testing.T) {
	code, _, _ := runCLI(t, "-Q", "--frame_rate", "0", "video.mp4")
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_TooManyArguments(t *testing.T) {
	code, _, stderr := runCLI(t, "a.mp4", "b.mp4")
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stderr, "2") {
		t.Errorf("stderr = %q, want the argument count", stderr)
	}
}

func TestRun_UnknownBackend(t *testing.T) {
	code, _, stderr := runCLI(t, "--backend", "gstreamer", "video.mp4")
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stderr, "gstreamer") {
		t.Errorf("stderr = %q, want the backend name", stderr)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "--no-such-flag", "video.mp4")
	if code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_MissingFile(t *testing.T) {
	out := t.TempDir()
	missing := filepath.Join(out, "missing.mp4")

	code, stdout, _ := runCLI(t, "-Q", "-o", out, missing)
	if code != exitFailure {
		t.Errorf("exit code = %d, want %d", code, exitFailure)
	}
	if strings.Contains(stdout, "Finally") {
		t.Errorf("stdout = %q, want no final line", stdout)
	}
}

func TestRun_StoresFrames(t *testing.T) {
	clip := testclip.Gray(t)
	out := t.TempDir()

	code, stdout, stderr := runCLI(t, "-Q", "--backend", "mpeg", "-r", "5", "-o", out, clip)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	stored := countFrames(t, out)
	if stored == 0 {
		t.Fatal("no frames written")
	}
	want := fmt.Sprintf("Finally all %d frames stored!", stored)
	if !strings.Contains(stdout, want) {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if _, err := os.Stat(filepath.Join(out, "frame1.jpg")); err != nil {
		t.Errorf("frame1.jpg: %v", err)
	}
}

func TestRun_HugeInterval(t *testing.T) {
	out := t.TempDir()

	code, stdout, stderr := runCLI(t, "-Q", "--backend", "mpeg", "-r", "4611686018427387904", "-o", out, testclip.Gray(t))
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if stdout != "Finally all 0 frames stored!\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if n := countFrames(t, out); n != 0 {
		t.Errorf("stored %d frames, want 0", n)
	}
}

func TestRun_FlagsAfterInput(t *testing.T) {
	out := t.TempDir()

	code, stdout, stderr := runCLI(t, testclip.Gray(t), "-Q", "--backend=mpeg", "--frame_rate", "5", "-o", out)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if n := countFrames(t, out); n != 2 {
		t.Errorf("stored %d frames, want 2", n)
	}
	if !strings.Contains(stdout, "Finally all 2 frames stored!") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestFlagsFirst(t *testing.T) {
	app := newApp(&bytes.Buffer{}, &bytes.Buffer{})

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "flags already first",
			args: []string{"framegrab", "-r", "10", "in.mp4"},
			want: []string{"framegrab", "-r", "10", "in.mp4"},
		},
		{
			name: "flags after input",
			args: []string{"framegrab", "in.mp4", "--frame_rate", "10", "-o", "out"},
			want: []string{"framegrab", "--frame_rate", "10", "-o", "out", "in.mp4"},
		},
		{
			name: "bool flag does not consume the input",
			args: []string{"framegrab", "--stamp", "in.mp4", "-Q"},
			want: []string{"framegrab", "--stamp", "-Q", "in.mp4"},
		},
		{
			name: "inline value",
			args: []string{"framegrab", "in.mp4", "--frame_rate=7"},
			want: []string{"framegrab", "--frame_rate=7", "in.mp4"},
		},
		{
			name: "terminator keeps dashed names positional",
			args: []string{"framegrab", "-r", "2", "--", "-odd.mp4"},
			want: []string{"framegrab", "-r", "2", "--", "-odd.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flagsFirst(app.Flags, tt.args)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("flagsFirst(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_DryRun(t *testing.T) {
	clip := testclip.Gray(t)
	out := t.TempDir()

	code, stdout, stderr := runCLI(t, "-Q", "--backend", "mpeg", "--dry-run", "-r", "3", "-o", out, clip)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if n := countFrames(t, out); n != 0 {
		t.Errorf("dry run wrote %d frames", n)
	}
	if !strings.Contains(stdout, "Finally all") {
		t.Errorf("stdout = %q, want the final line", stdout)
	}
}

func TestRun_Summary(t *testing.T) {
	clip := testclip.Gray(t)
	out := t.TempDir()
	summary := filepath.Join(t.TempDir(), "summary.md")

	code, _, stderr := runCLI(t, "-Q", "--backend", "mpeg", "--summary", summary, "-o", out, clip)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(data), "# Frame Extraction Summary") {
		t.Errorf("summary missing heading:\n%s", data)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	clip := testclip.Gray(t)
	out := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "framegrab.yaml")
	yaml := fmt.Sprintf("output_frames_folder_path: %s\nframe_rate: 2\nbackend: mpeg\nquiet: true\n", out)
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "-c", cfgPath, clip)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if n := countFrames(t, out); n < 4 {
		t.Errorf("stored %d frames with interval 2 over 10 frames, want at least 4", n)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.Config{LogLevel: "info"}, &buf)
	log.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output = %q, want %q", buf.String(), "hello")
	}

	buf.Reset()
	log = newLogger(config.Config{LogLevel: "info", Quiet: true}, &buf)
	log.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}
