package apperrors

import (
	"fmt"
	"strings"
)

// Violations accumulates structural validation failures so that a single
// KindValidation error can report every offending field at once.
type Violations struct {
	items []string
}

// Add records a violation.
func (v *Violations) Add(msg string) {
	v.items = append(v.items, msg)
}

// Addf records a formatted violation.
func (v *Violations) Addf(format string, args ...any) {
	v.items = append(v.items, fmt.Sprintf(format, args...))
}

// Empty reports whether no violations were recorded.
func (v *Violations) Empty() bool { return len(v.items) == 0 }

// Err returns nil when no violations were recorded, otherwise a single
// KindValidation error listing all of them.
func (v *Violations) Err() error {
	if len(v.items) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Msg: strings.Join(v.items, "; ")}
}
