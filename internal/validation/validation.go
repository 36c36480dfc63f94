package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error reports per-field validation failures. Err, when set, is the sentinel
// describing the failure as a whole and is reachable through errors.Is.
type Error struct {
	Err    error
	Fields map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields)+1)
	if e.Err != nil {
		msgs = append(msgs, e.Err.Error())
	}
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return e.Err
}
