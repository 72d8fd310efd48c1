// Package ffmpegsource decodes any format ffmpeg understands by streaming raw
// RGBA frames from a single long-lived ffmpeg process.
package ffmpegsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/framegrab/pkg/adapters/probe"
	"github.com/user/framegrab/pkg/ports"
)

// ErrTruncatedFrame is returned when the stream ends in the middle of a frame.
var ErrTruncatedFrame = errors.New("ffmpegsource: truncated frame")

// stderrTailSize bounds how much ffmpeg diagnostic output is kept.
const stderrTailSize = 4096

// Options configures the ffmpeg source.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Width and Height of the emitted frames. When zero they are probed.
	Width  int
	Height int
}

// Source implements ports.FrameSource on top of an ffmpeg child process.
type Source struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr *tailBuffer
	frame  *image.RGBA

	closeOnce sync.Once
	waited    bool
}

// Args returns the ffmpeg arguments used to decode path to raw RGBA frames
// of the given size.
func Args(path string, width, height int) []string {
	return ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgba",
			"s":       fmt.Sprintf("%dx%d", width, height),
		}).
		GlobalArgs("-hide_banner", "-loglevel", "error", "-nostdin").
		GetArgs()
}

// Open starts ffmpeg for path. The caller must Close the source.
func Open(ctx context.Context, path string, opts Options) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ffmpegPath, err := FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height, err = probeSize(path, opts.FFmpegPath)
		if err != nil {
			return nil, err
		}
	}

	cmd := exec.Command(ffmpegPath, Args(path, width, height)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr := &tailBuffer{limit: stderrTailSize}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	frameSize := width * height * 4
	return &Source{
		cmd:    cmd,
		stdout: stdout,
		reader: bufio.NewReaderSize(stdout, frameSize),
		stderr: stderr,
		frame:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// probeSize reads the frame size from container metadata, preferring the
// in-process MP4 parser over the ffprobe paired with ffmpegPath.
func probeSize(path, ffmpegPath string) (int, int, error) {
	info, err := probe.Probe(path)
	if err == nil && info.Width > 0 && info.Height > 0 {
		return info.Width, info.Height, nil
	}

	ffprobePath, ferr := FindFFprobe(ffmpegPath)
	if ferr != nil {
		return 0, 0, fmt.Errorf("probe frame size: %w", ferr)
	}
	info, ferr = probe.ProbeFFprobe(ffprobePath, path)
	if ferr != nil {
		return 0, 0, fmt.Errorf("probe frame size: %w", ferr)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return 0, 0, fmt.Errorf("probe frame size: invalid size %dx%d", info.Width, info.Height)
	}
	return info.Width, info.Height, nil
}

// Size returns the dimensions of emitted frames.
func (s *Source) Size() (int, int) {
	b := s.frame.Bounds()
	return b.Dx(), b.Dy()
}

// Read returns the next frame. The returned image is reused by the next call.
// io.EOF marks a clean end of stream.
func (s *Source) Read() (image.Image, error) {
	_, err := io.ReadFull(s.reader, s.frame.Pix)
	switch {
	case err == nil:
		return s.frame, nil
	case errors.Is(err, io.EOF):
		if werr := s.wait(); werr != nil {
			return nil, werr
		}
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		if werr := s.wait(); werr != nil {
			return nil, fmt.Errorf("%w: %w", ErrTruncatedFrame, werr)
		}
		return nil, ErrTruncatedFrame
	default:
		return nil, fmt.Errorf("read frame: %w", err)
	}
}

// wait reaps ffmpeg after its output ended and reports a failed exit.
func (s *Source) wait() error {
	if s.waited {
		return nil
	}
	s.waited = true
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, s.stderr.String())
	}
	return nil
}

// Close stops ffmpeg and releases the pipe. Safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if s.waited {
			return
		}
		s.stdout.Close()
		if s.cmd.Process != nil {
			// The process may already have exited on its own.
			_ = s.cmd.Process.Kill()
		}
		_ = s.cmd.Wait()
		s.waited = true
	})
	return nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if len(b.buf) > b.limit {
		b.buf = b.buf[len(b.buf)-b.limit:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.buf))
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
