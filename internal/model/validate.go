package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError reports a required field that was absent, null or invalid in
// an API payload. Path is the dotted JSON path, e.g. "data[2].attributes.amount".
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func missing(field string) error {
	return &FieldError{Path: field, Reason: "required field missing"}
}

// within prefixes the path of a FieldError produced by a nested shape.
func within(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	path := prefix
	if fe.Path != "" {
		if strings.HasPrefix(fe.Path, "[") {
			path += fe.Path
		} else {
			path += "." + fe.Path
		}
	}
	return &FieldError{Path: path, Reason: fe.Reason}
}
