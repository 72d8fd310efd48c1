package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ffprobeOutput is the subset of `ffprobe -show_format -show_streams` JSON we read.
type ffprobeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// ProbeFFprobe reads metadata for any container ffprobe understands.
// An empty ffprobePath runs the ffprobe found on PATH.
func ProbeFFprobe(ffprobePath, path string) (Info, error) {
	if ffprobePath == "" {
		out, err := ffmpeg.Probe(path)
		if err != nil {
			return Info{}, fmt.Errorf("ffprobe: %w", err)
		}
		return parseFFprobe([]byte(out))
	}

	cmd := exec.Command(ffprobePath, "-v", "error", "-show_format", "-show_streams", "-of", "json", path)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Info{}, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Info{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseFFprobe(out)
}

func parseFFprobe(data []byte) (Info, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	container := ContainerUnknown
	if out.Format.FormatName != "" {
		// format_name may list aliases, e.g. "mov,mp4,m4a,3gp,3g2,mj2"
		container = strings.Split(out.Format.FormatName, ",")[0]
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		info := Info{
			Container: container,
			Codec:     codecFromFFprobe(s.CodecName),
			Width:     s.Width,
			Height:    s.Height,
			FrameRate: parseRational(s.AvgFrameRate),
		}
		if info.FrameRate == 0 {
			info.FrameRate = parseRational(s.RFrameRate)
		}
		if n, err := strconv.Atoi(s.NbFrames); err == nil {
			info.Frames = n
		}
		return info, nil
	}

	return Info{Container: container}, ErrNoVideoTrack
}

func codecFromFFprobe(name string) Codec {
	switch name {
	case "h264":
		return CodecH264
	case "hevc":
		return CodecH265
	case "av1":
		return CodecAV1
	case "vp9":
		return CodecVP9
	case "mpeg4":
		return CodecMPEG4
	case "mpeg1video":
		return CodecMPEG1
	}
	return CodecUnknown
}

// parseRational parses "30000/1001" style rates. Returns 0 on failure.
func parseRational(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
