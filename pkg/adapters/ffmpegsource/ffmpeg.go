package ffmpegsource

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
var ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found")

// ErrFFprobeNotFound is returned when no ffprobe binary can be located.
var ErrFFprobeNotFound = errors.New("ffmpegsource: ffprobe not found")

// FindFFmpeg searches for ffmpeg in PATH and common locations.
// If customPath is set, it uses that path instead.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, customPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// FindFFprobe locates the ffprobe that belongs to the ffmpeg FindFFmpeg
// resolves for ffmpegPath: a sibling in the same directory wins over PATH.
func FindFFprobe(ffmpegPath string) (string, error) {
	execName := "ffprobe"
	if runtime.GOOS == "windows" {
		execName = "ffprobe.exe"
	}

	resolved, err := FindFFmpeg(ffmpegPath)
	if err == nil {
		sibling := filepath.Join(filepath.Dir(resolved), execName)
		if fi, serr := os.Stat(sibling); serr == nil && !fi.IsDir() {
			return sibling, nil
		}
	}

	if path, lerr := exec.LookPath(execName); lerr == nil {
		return path, nil
	}

	if ffmpegPath != "" {
		return "", fmt.Errorf("%w: not next to %s nor in PATH", ErrFFprobeNotFound, ffmpegPath)
	}
	return "", ErrFFprobeNotFound
}

// IsAvailable reports whether an ffmpeg binary can be found.
func IsAvailable(customPath string) bool {
	_, err := FindFFmpeg(customPath)
	return err == nil
}
