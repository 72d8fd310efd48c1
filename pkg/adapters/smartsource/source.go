// Package smartsource opens a video with the most suitable decoding backend.
package smartsource

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/user/framegrab/pkg/adapters/ffmpegsource"
	"github.com/user/framegrab/pkg/adapters/mpegsource"
	"github.com/user/framegrab/pkg/adapters/probe"
	"github.com/user/framegrab/pkg/ports"
)

// Backend represents the decoding backend used.
type Backend string

const (
	// BackendAuto picks mpeg for MPEG-1 program streams and ffmpeg otherwise.
	BackendAuto Backend = "auto"
	// BackendFFmpeg represents FFmpeg-based decoding.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendMPEG represents the pure-Go MPEG-1 decoder.
	BackendMPEG Backend = "mpeg"
)

var (
	// ErrUnknownBackend is returned for backend names other than auto, ffmpeg and mpeg.
	ErrUnknownBackend = errors.New("smartsource: unknown backend")
	// ErrNoBackendAvailable is returned when no backend can decode the file.
	ErrNoBackendAvailable = errors.New("smartsource: no backend available")
)

// ParseBackend validates a backend name. The empty string means auto.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendFFmpeg, BackendMPEG:
		return Backend(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Options configures the smart source behavior.
type Options struct {
	// Backend forces a backend. Empty or BackendAuto selects by container.
	Backend Backend
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

// Opener implements ports.SourceOpener.
type Opener struct {
	opts            Options
	logger          ports.Logger
	ffmpegAvailable func(customPath string) bool
}

// New creates an Opener.
func New(opts Options, logger ports.Logger) *Opener {
	return &Opener{
		opts:            opts,
		logger:          logger.WithComponent("source"),
		ffmpegAvailable: ffmpegsource.IsAvailable,
	}
}

// SelectBackend decides which backend decodes a file.
//
// The selection flow:
//   - forced backend: used as is (ffmpeg must be installed)
//   - MPEG-1 program stream: pure-Go decoder
//   - anything else: ffmpeg
func SelectBackend(container string, forced Backend, ffmpegAvailable bool) (Backend, error) {
	switch forced {
	case BackendMPEG:
		return BackendMPEG, nil
	case BackendFFmpeg:
		if !ffmpegAvailable {
			return "", fmt.Errorf("%w: %w", ErrNoBackendAvailable, ffmpegsource.ErrFFmpegNotFound)
		}
		return BackendFFmpeg, nil
	case "", BackendAuto:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, forced)
	}

	if container == probe.ContainerMPEGPS {
		return BackendMPEG, nil
	}
	if ffmpegAvailable {
		return BackendFFmpeg, nil
	}
	return "", fmt.Errorf("%w: %s container needs ffmpeg", ErrNoBackendAvailable, container)
}

// Open inspects path, selects a backend and starts decoding.
func (o *Opener) Open(ctx context.Context, path string) (ports.FrameSource, ports.SourceInfo, error) {
	info := ports.SourceInfo{Path: path}

	st, err := os.Stat(path)
	if err != nil {
		return nil, info, err
	}
	if st.IsDir() {
		return nil, info, fmt.Errorf("%s is a directory", path)
	}

	container, err := probe.SniffFile(path)
	if err != nil {
		return nil, info, err
	}

	backend, err := SelectBackend(container, o.opts.Backend, o.ffmpegAvailable(o.opts.FFmpegPath))
	if err != nil {
		return nil, info, err
	}
	info.Backend = string(backend)
	o.logger.Debug("Container %s, using %s backend", container, backend)

	var src ports.FrameSource
	switch backend {
	case BackendMPEG:
		src, err = o.openMPEG(path, &info)
	default:
		src, err = o.openFFmpeg(ctx, path, &info)
	}
	if err != nil {
		return nil, info, err
	}

	if info.Width > 0 && info.Height > 0 {
		o.logger.Info("Video %s %dx%d, about %d frames at %.2f fps", info.Codec, info.Width, info.Height, info.Frames, info.FrameRate)
	}
	return src, info, nil
}

func (o *Opener) openMPEG(path string, info *ports.SourceInfo) (ports.FrameSource, error) {
	src, err := mpegsource.Open(path)
	if err != nil {
		return nil, err
	}
	info.Codec = string(probe.CodecMPEG1)
	info.Width, info.Height = src.Size()
	info.FrameRate = src.FrameRate()
	info.Frames = src.EstimatedFrames()
	return src, nil
}

func (o *Opener) openFFmpeg(ctx context.Context, path string, info *ports.SourceInfo) (ports.FrameSource, error) {
	meta, err := probe.Probe(path)
	if err != nil {
		o.logger.Debug("Container probe failed, trying ffprobe: %s", err)
		var ffprobePath string
		ffprobePath, err = ffmpegsource.FindFFprobe(o.opts.FFmpegPath)
		if err == nil {
			meta, err = probe.ProbeFFprobe(ffprobePath, path)
		}
		if err != nil {
			o.logger.Debug("ffprobe failed: %s", err)
		}
	}
	if err == nil {
		info.Codec = string(meta.Codec)
		info.FrameRate = meta.FrameRate
		info.Frames = meta.Frames
	}

	src, err := ffmpegsource.Open(ctx, path, ffmpegsource.Options{
		FFmpegPath: o.opts.FFmpegPath,
		Width:      meta.Width,
		Height:     meta.Height,
	})
	if err != nil {
		return nil, err
	}
	info.Width, info.Height = src.Size()
	return src, nil
}

// Ensure Opener implements ports.SourceOpener
var _ ports.SourceOpener = (*Opener)(nil)
