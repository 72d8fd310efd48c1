package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Frame Extraction Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Input\n\n")
	writeTableHeader(&b)
	writeRow(&b, "File", code(s.Input.Path))
	writeRow(&b, "Backend", orNA(s.Input.Backend))
	writeRow(&b, "Codec", orNA(s.Input.Codec))
	writeRow(&b, "Resolution", formatResolution(s.Input.Width, s.Input.Height))
	writeRow(&b, "Frame Rate", formatFPS(s.Input.FrameRate))
	writeRow(&b, "Estimated Frames", formatCount(s.Input.EstimatedFrames))
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	writeTableHeader(&b)
	writeRow(&b, "Interval", fmt.Sprintf("every %d frames", s.Settings.Interval))
	writeRow(&b, "Output Folder", code(s.Settings.OutputDir))
	writeRow(&b, "JPEG Quality", fmt.Sprintf("%d", s.Settings.JPEGQuality))
	if s.Settings.MaxWidth > 0 {
		writeRow(&b, "Max Width", fmt.Sprintf("%d px", s.Settings.MaxWidth))
	} else {
		writeRow(&b, "Max Width", "Original")
	}
	writeRow(&b, "Frame Stamp", onOff(s.Settings.Stamp))
	writeRow(&b, "Dry Run", yesNo(s.Settings.DryRun))
	b.WriteString("\n")

	b.WriteString("## Result\n\n")
	writeTableHeader(&b)
	writeRow(&b, "Frames Decoded", fmt.Sprintf("%d", s.Result.FramesRead))
	writeRow(&b, "Frames Stored", fmt.Sprintf("%d", s.Result.FramesStored))
	writeRow(&b, "Files Written", fmt.Sprintf("%d", s.Result.FilesWritten))
	writeRow(&b, "Elapsed", formatDuration(s.Result.Elapsed))
	if s.Result.ReadError != "" {
		writeRow(&b, "Stopped Early", escape(s.Result.ReadError))
	}

	return b.String()
}

func writeTableHeader(b *strings.Builder) {
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
}

func writeRow(b *strings.Builder, item, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", item, value)
}

func code(s string) string {
	if s == "" {
		return "N/A"
	}
	return "`" + s + "`"
}

// escape keeps a value inside a single table cell.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatResolution(w, h int) string {
	if w <= 0 || h <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

func formatFPS(fps float64) string {
	if fps <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f fps", fps)
}

func formatCount(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
