// Package testclip provides short synthetic videos for adapter tests.
// Gray returns a committed MPEG-1 clip and always works; the generators
// skip the calling test when ffmpeg is not installed.
package testclip

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// Gray clip properties. Every picture is intra coded and flat gray, one
// brightness step lighter than the previous one.
const (
	GrayFrames = 12
	GrayWidth  = 64
	GrayHeight = 48
)

//go:embed testdata/gray.mpg
var gray []byte

// Gray writes the committed MPEG-1 program stream (GrayFrames frames of
// GrayWidth x GrayHeight at Rate fps) into a temp dir and returns its path.
func Gray(t testing.TB) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), "gray.mpg")
	if err := os.WriteFile(out, gray, 0644); err != nil {
		t.Fatalf("write clip: %v", err)
	}
	return out
}

// Rate is the frame rate of generated clips. MPEG-1 only accepts standard rates.
const Rate = 25

// FFmpeg returns the ffmpeg binary on PATH or skips the test.
func FFmpeg(t testing.TB) string {
	t.Helper()
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	return path
}

// MP4 writes an MPEG-4 Part 2 clip in an MP4 container.
func MP4(t testing.TB, frames, width, height int) string {
	t.Helper()
	return generate(t, "clip.mp4", frames, width, height, "-c:v", "mpeg4", "-f", "mp4")
}

// MPEG1 writes an MPEG-1 program stream, the format the pure-Go decoder reads.
func MPEG1(t testing.TB, frames, width, height int) string {
	t.Helper()
	return generate(t, "clip.mpg", frames, width, height, "-c:v", "mpeg1video", "-f", "mpeg")
}

func generate(t testing.TB, name string, frames, width, height int, codecArgs ...string) string {
	t.Helper()
	ffmpegPath := FFmpeg(t)

	out := filepath.Join(t.TempDir(), name)
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("testsrc=size=%dx%d:rate=%d", width, height, Rate),
		"-frames:v", fmt.Sprint(frames),
		"-pix_fmt", "yuv420p",
	}
	args = append(args, codecArgs...)
	args = append(args, out)

	var stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Skipf("ffmpeg could not generate %s: %v: %s", name, err, stderr.String())
	}
	return out
}
