// Package query assembles sparse optional search filters into a single
// parameterized WHERE clause. Caller-supplied values are never interpolated
// into the query text; they are always bound parameters.
package query

import (
	"fmt"
	"strings"
	"time"

	"anidex.org/internal/apperrors"
)

// Builder collects AND-combined predicates in call order, which gives every
// filter set a deterministic clause and argument order.
type Builder struct {
	conds []string
	args  []any
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Eq adds an equality predicate.
func (b *Builder) Eq(column string, value any) *Builder {
	return b.add(column+" = %s", value)
}

// Contains adds a substring predicate: the value is wrapped with wildcard
// markers on both sides before binding, so it matches anywhere in the
// column, not just as a prefix.
func (b *Builder) Contains(column, value string) *Builder {
	return b.add(column+" like %s", "%"+value+"%")
}

// GTE adds a lower-bound predicate.
func (b *Builder) GTE(column string, value any) *Builder {
	return b.add(column+" >= %s", value)
}

// LTE adds an upper-bound predicate.
func (b *Builder) LTE(column string, value any) *Builder {
	return b.add(column+" <= %s", value)
}

func (b *Builder) add(cond string, value any) *Builder {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholder(len(b.args))))
	return b
}

// Empty reports whether no predicates were added.
func (b *Builder) Empty() bool { return len(b.conds) == 0 }

// Clause returns the assembled WHERE clause (with a leading space) and the
// bound arguments. An empty builder yields an empty clause: no predicates
// means match all rows.
func (b *Builder) Clause() (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	return " where " + strings.Join(b.conds, " and "), b.args
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// Timestamps must land inside the store's date range; years 1..9999 covers
// every value the catalog can represent.
const (
	minEpoch = -62135596800 // 0001-01-01T00:00:00Z
	maxEpoch = 253402300799 // 9999-12-31T23:59:59Z
)

// TimeFromEpoch converts integer epoch seconds to UTC time, rejecting
// out-of-range values.
func TimeFromEpoch(sec int64) (time.Time, error) {
	if sec < minEpoch || sec > maxEpoch {
		return time.Time{}, apperrors.Newf(apperrors.KindInvalidData, "timestamp %d is out of range", sec)
	}
	return time.Unix(sec, 0).UTC(), nil
}
