package contract

import (
	"fmt"
	"strings"

	"github.com/climb-tre/claspar/schema"
)

// ConfigError reports a malformed or inconsistent threshold configuration.
// It is fatal and surfaced before any record processing begins.
type ConfigError struct {
	Classifier string // Offending classifier section, may be empty for file-level problems
	Field      string // Offending field entry, may be empty
	Reason     string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Classifier != "" && e.Field != "":
		return fmt.Sprintf("threshold config: %s.%s: %s", e.Classifier, e.Field, e.Reason)
	case e.Classifier != "":
		return fmt.Sprintf("threshold config: %s: %s", e.Classifier, e.Reason)
	default:
		return fmt.Sprintf("threshold config: %s", e.Reason)
	}
}

// ParseError reports one raw classifier row that could not be normalized.
type ParseError struct {
	Classifier schema.Classifier
	Row        int // Zero-based index into the raw payload
	Field      string
	Reason     string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %d: field %q: %s", e.Classifier, e.Row, e.Field, e.Reason)
}

// ParseErrors collects the per-row failures of one normalization pass.
// The policy is skip-and-collect: a malformed row is excluded from the
// normalized output and the batch is surfaced as a single warning, so one
// bad row never blocks unrelated results.
type ParseErrors []*ParseError

// Error implements the error interface.
func (pe ParseErrors) Error() string {
	if len(pe) == 0 {
		return "no parse errors"
	}
	msgs := make([]string, len(pe))
	for i, e := range pe {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d row(s) skipped: %s", len(pe), strings.Join(msgs, "; "))
}
