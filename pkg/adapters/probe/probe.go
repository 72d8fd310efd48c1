// Package probe reads container metadata from video files without decoding
// any frames.
package probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecH265    Codec = "h265"
	CodecAV1     Codec = "av1"
	CodecVP9     Codec = "vp9"
	CodecMPEG4   Codec = "mpeg4"
	CodecMPEG1   Codec = "mpeg1video"
	CodecUnknown Codec = "unknown"
)

// Container names reported in Info.
const (
	ContainerMP4     = "mp4"
	ContainerMPEGPS  = "mpeg-ps"
	ContainerUnknown = "unknown"
)

var (
	// ErrNoVideoTrack is returned when the container has no video track.
	ErrNoVideoTrack = errors.New("probe: no video track found")
	// ErrUnsupportedContainer is returned when the file is not an MP4/MOV file.
	ErrUnsupportedContainer = errors.New("probe: unsupported container")
)

// mpegPackHeader starts every MPEG-1/2 program stream.
var mpegPackHeader = []byte{0x00, 0x00, 0x01, 0xBA}

// Info describes the video track of a file.
// Zero values mean the field could not be determined.
type Info struct {
	Container string
	Codec     Codec
	Width     int
	Height    int
	Frames    int
	FrameRate float64
}

// Sniff reports the container format from the first bytes of r.
func Sniff(r io.Reader) (string, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ContainerUnknown, err
	}
	head = head[:n]

	if bytes.HasPrefix(head, mpegPackHeader) {
		return ContainerMPEGPS, nil
	}
	if len(head) >= 8 {
		switch string(head[4:8]) {
		case "ftyp", "moov", "mdat", "free", "wide", "skip":
			return ContainerMP4, nil
		}
	}
	return ContainerUnknown, nil
}

// SniffFile opens path and calls Sniff.
func SniffFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return ContainerUnknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Sniff(f)
}

// Probe reads MP4/MOV metadata from a file.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader reads MP4/MOV metadata from an io.ReadSeeker.
// Media data is skipped, so large files are cheap to probe.
func ProbeReader(reader io.ReadSeeker) (Info, error) {
	container, err := Sniff(reader)
	if err != nil {
		return Info{}, fmt.Errorf("sniff: %w", err)
	}
	if container != ContainerMP4 {
		return Info{Container: container}, fmt.Errorf("%w: %s", ErrUnsupportedContainer, container)
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek: %w", err)
	}

	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	// Reset reader position for subsequent reads
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek: %w", err)
	}

	return infoFromMP4File(mp4File)
}

func infoFromMP4File(mp4File *mp4.File) (Info, error) {
	// Check fragmented MP4
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		for _, trak := range mp4File.Init.Moov.Traks {
			info, ok := infoFromTrack(trak)
			if !ok {
				continue
			}
			if trak.Tkhd != nil {
				info.Frames = countFragmentSamples(mp4File, trak.Tkhd.TrackID)
			}
			return info, nil
		}
	}

	// Check progressive MP4
	if mp4File.Moov != nil {
		for _, trak := range mp4File.Moov.Traks {
			info, ok := infoFromTrack(trak)
			if !ok {
				continue
			}
			stbl := trak.Mdia.Minf.Stbl
			if stbl.Stsz != nil {
				info.Frames = int(stbl.Stsz.SampleNumber)
			}
			info.FrameRate = frameRate(trak)
			return info, nil
		}
	}

	return Info{Container: ContainerMP4}, ErrNoVideoTrack
}

// infoFromTrack returns codec and dimensions for video tracks.
func infoFromTrack(trak *mp4.TrakBox) (Info, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return Info{}, false
	}

	// Only process video tracks
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return Info{}, false
	}

	info := Info{Container: ContainerMP4, Codec: CodecUnknown}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return info, true
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		info.Codec = codecFromSampleEntry(child.Type())
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		if info.Codec != CodecUnknown {
			break
		}
	}

	return info, true
}

func codecFromSampleEntry(boxType string) Codec {
	switch boxType {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecH265
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	case "mp4v":
		return CodecMPEG4
	}
	return CodecUnknown
}

// frameRate derives fps from the first stts entry of a progressive track.
func frameRate(trak *mp4.TrakBox) float64 {
	if trak.Mdia.Mdhd == nil || trak.Mdia.Minf.Stbl.Stts == nil {
		return 0
	}
	stts := trak.Mdia.Minf.Stbl.Stts
	if len(stts.SampleTimeDelta) == 0 || stts.SampleTimeDelta[0] == 0 {
		return 0
	}
	return float64(trak.Mdia.Mdhd.Timescale) / float64(stts.SampleTimeDelta[0])
}

// countFragmentSamples sums trun sample counts for a track across all fragments.
func countFragmentSamples(mp4File *mp4.File, trackID uint32) int {
	total := 0
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					total += int(trun.SampleCount())
				}
			}
		}
	}
	return total
}
