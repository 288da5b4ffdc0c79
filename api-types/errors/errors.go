package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorMessage is the error payload the platform web services respond with
// on non-success statuses.
type ErrorMessage struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Message *string `json:"message"`
		Details *string `json:"details,omitempty"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Message == nil {
		return fmt.Errorf(`required field missing: "message"`)
	}
	em.Message = *f.Message

	if f.Details != nil {
		em.Details = *f.Details
	}

	return nil
}

func (e ErrorMessage) String() string {
	lines := []string{e.Message}
	if e.Details != "" {
		lines = append(lines, e.Details)
	}
	if e.Cause != nil {
		lines = append(lines, fmt.Sprint(" caused by:", e.Cause.Error()))
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}
