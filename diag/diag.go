// Package diag carries recoverable faults (unreadable files, corrupt packs,
// failed copies) back to callers so the UI can display them.
package diag

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"brew/logger"
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindParse   Kind = "parse"
	KindRead    Kind = "read"
	KindCopy    Kind = "copy"
	KindMissing Kind = "missing"
	KindInvalid Kind = "invalid"
)

// Diagnostic describes one recovered fault.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Path != "" {
		fmt.Fprintf(&b, " (%s)", d.Path)
	}
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends a diagnostic and logs it at WARN.
func (l *List) Add(kind Kind, path, message string, err error) {
	d := Diagnostic{Kind: kind, Path: path, Message: message, Err: err}
	*l = append(*l, d)
	log(d)
}

// Extend appends already-logged diagnostics.
func (l *List) Extend(other List) {
	*l = append(*l, other...)
}

// Has reports whether any diagnostic of the given kind is present.
func (l List) Has(kind Kind) bool {
	for _, d := range l {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func log(d Diagnostic) {
	fields := []zap.Field{zap.String("kind", string(d.Kind))}
	if d.Path != "" {
		fields = append(fields, zap.String("path", d.Path))
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}
	logger.Warn(d.Message, fields...)
}
