// Package stdoutreporter prints sampling progress to standard output.
//
// The two lines it prints are a fixed output format and are never localized;
// log messages go through the logger instead.
package stdoutreporter

import (
	"fmt"
	"io"

	"github.com/user/framegrab/pkg/ports"
)

// Reporter writes one line per progress event.
type Reporter struct {
	out io.Writer
}

// NewWriter creates a reporter writing to w.
func NewWriter(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Progress prints "<stored> frames stored!".
func (r *Reporter) Progress(stored int) {
	fmt.Fprintf(r.out, "%d frames stored!\n", stored)
}

// Finished prints "Finally all <stored> frames stored!".
func (r *Reporter) Finished(stored int) {
	fmt.Fprintf(r.out, "Finally all %d frames stored!\n", stored)
}

var _ ports.ProgressReporter = (*Reporter)(nil)
