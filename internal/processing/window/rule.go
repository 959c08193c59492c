// Package window slides a fixed-size window over an intensity plane and
// classifies every accepted position by its ordinal pattern.
package window

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRule    = errors.New("window: unknown inclusion rule")
	ErrShapeMismatch  = errors.New("window: image and mask dimensions differ")
	ErrInvalidWorkers = errors.New("window: worker count must be positive")
	ErrNilInput       = errors.New("window: nil image or mask")
)

// Rule decides whether a window position takes part in the measurement.
type Rule string

const (
	// AllInside accepts a window only if every pixel under it counts.
	AllInside Rule = "all-inside"
	// Center accepts a window if the pixel at (x+dx/2, y+dy/2) counts.
	Center Rule = "center"
)

// ParseRule accepts the canonical names plus the "all4" spelling used by
// earlier reports.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all-inside", "all4", "allinside":
		return AllInside, nil
	case "center", "centre":
		return Center, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, s)
	}
}

func (r Rule) Validate() error {
	switch r {
	case AllInside, Center:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, string(r))
	}
}

func (r Rule) String() string {
	return string(r)
}
