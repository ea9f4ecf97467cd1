package vcfchunk

import (
	"fmt"
	"log"
)

// Warner receives recoverable anomalies (spec.md §7): unparseable numeric
// values (and an empty POS), scratch-buffer overflow, cardinality or ploidy
// overflow, unknown INFO or FORMAT keys, empty FILTER tokens. Other empty or
// '.' values, and overlong strings (which are truncated), are not reported.
// Warnings never abort parsing.
type Warner interface {
	Warn(variantIndex int, msg string)
}

// LogWarner is the default Warner, wrapping a *log.Logger, mirroring the
// teacher's bare log.Println call sites.
type LogWarner struct {
	logger *log.Logger
}

// NewLogWarner returns a Warner that writes to the given *log.Logger, or to
// log.Default() if l is nil.
func NewLogWarner(l *log.Logger) *LogWarner {
	if l == nil {
		l = log.Default()
	}
	return &LogWarner{logger: l}
}

func (w *LogWarner) Warn(variantIndex int, msg string) {
	w.logger.Printf("vcfchunk: variant %d: %s", variantIndex, msg)
}

// discardWarner drops every warning; used by tests that only care about the
// parse result.
type discardWarner struct{}

func (discardWarner) Warn(int, string) {}

// FatalError describes an unreachable state or an internal contract
// violation (spec.md §7). Parse and Run return no error, and no parser code
// path constructs a FatalError. Mirrors the teacher's
// errors.New("...: "+line) idiom.
type FatalError struct {
	VariantIndex int
	Msg          string
}

func (e *FatalError) Error() string {
	if e.VariantIndex < 0 {
		return fmt.Sprintf("vcfchunk: fatal: %s", e.Msg)
	}
	return fmt.Sprintf("vcfchunk: fatal: variant %d: %s", e.VariantIndex, e.Msg)
}

func fatalf(variantIndex int, format string, args ...interface{}) *FatalError {
	return &FatalError{VariantIndex: variantIndex, Msg: fmt.Sprintf(format, args...)}
}
