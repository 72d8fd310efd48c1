package stdoutreporter

import (
	"bytes"
	"testing"

	"github.com/ideamans/go-l10n"
)

func TestReporter_Lines(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriter(&buf)

	r.Progress(100)
	r.Progress(200)
	r.Finished(203)

	want := "100 frames stored!\n200 frames stored!\nFinally all 203 frames stored!\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestReporter_Zero(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf).Finished(0)

	if buf.String() != "Finally all 0 frames stored!\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestReporter_IgnoresLocale(t *testing.T) {
	l10n.ForceLanguage("ja")
	t.Cleanup(func() { l10n.ForceLanguage("en") })

	var buf bytes.Buffer
	r := NewWriter(&buf)
	r.Progress(100)
	r.Finished(3)

	want := "100 frames stored!\nFinally all 3 frames stored!\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
