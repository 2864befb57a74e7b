package apiclient

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a validated list filter expression, e.g.
// `display_name eq "Jane Doe"`. Construction fails before any HTTP happens
// so a typo never reaches the server as a confusing 400.
type Filter struct {
	expr string
}

var filterFieldPattern = regexp.MustCompile(`^[a-z][a-z0-9_.]*$`)

var filterOperators = map[string]bool{
	"eq": true,
	"ne": true,
	"co": true,
	"sw": true,
	"ew": true,
}

// NewFilter builds a single-clause filter from a field, operator, and value.
func NewFilter(field, op, value string) (Filter, error) {
	if !filterFieldPattern.MatchString(field) {
		return Filter{}, fmt.Errorf("%w: bad field %q", ErrInvalidFilter, field)
	}
	if !filterOperators[op] {
		return Filter{}, fmt.Errorf("%w: unsupported operator %q", ErrInvalidFilter, op)
	}
	if strings.ContainsAny(value, `"`) {
		return Filter{}, fmt.Errorf("%w: value must not contain quotes", ErrInvalidFilter)
	}
	return Filter{expr: fmt.Sprintf("%s %s %q", field, op, value)}, nil
}

// ParseFilter validates a raw `field op "value"` expression supplied on the
// command line.
func ParseFilter(raw string) (Filter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Filter{}, nil
	}

	parts := strings.SplitN(raw, " ", 3)
	if len(parts) != 3 {
		return Filter{}, fmt.Errorf("%w: expected `field op \"value\"`, got %q", ErrInvalidFilter, raw)
	}

	value := parts[2]
	if !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) || len(value) < 2 {
		return Filter{}, fmt.Errorf("%w: value must be double-quoted", ErrInvalidFilter)
	}

	return NewFilter(parts[0], parts[1], value[1:len(value)-1])
}

// IsZero reports whether the filter is empty.
func (f Filter) IsZero() bool { return f.expr == "" }

// Encode returns the wire form for the filter query parameter.
func (f Filter) Encode() string { return f.expr }
