package backoffice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnauthorized = errors.New("backoffice: unauthorized")

// FieldError is one entry of a structured validation detail
// ({loc, msg, type} records).
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ErrorDetail is the backend's `detail` field, which arrives either as a plain
// string or as a list of FieldError records. Unknown shapes decode to an empty
// detail so the caller-supplied fallback applies.
type ErrorDetail struct {
	Text   string
	Fields []FieldError
}

func (d *ErrorDetail) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.Text = s
		return nil
	}
	var fs []FieldError
	if err := json.Unmarshal(b, &fs); err == nil {
		d.Fields = fs
		return nil
	}
	return nil
}

func (d ErrorDetail) Empty() bool {
	return d.Text == "" && len(d.Fields) == 0
}

// Message flattens the detail to a single display string; structured entries
// are comma-joined.
func (d ErrorDetail) Message() string {
	if d.Text != "" {
		return d.Text
	}
	msgs := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		msgs = append(msgs, f.Msg)
	}
	return strings.Join(msgs, ", ")
}

// APIError is any non-2xx backoffice response. 401s additionally wrap
// ErrUnauthorized so callers can detect them with errors.Is.
type APIError struct {
	Status int
	Detail ErrorDetail
}

func (e *APIError) Error() string {
	if !e.Detail.Empty() {
		return fmt.Sprintf("backoffice: status %d: %s", e.Status, e.Detail.Message())
	}
	return fmt.Sprintf("backoffice: status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// Message extracts a human-readable string from any error for inline display.
// Only an *APIError carrying a detail yields its own text; everything else
// (transport failures included) yields the per-operation fallback.
func Message(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && !ae.Detail.Empty() {
		return ae.Detail.Message()
	}
	return fallback
}
