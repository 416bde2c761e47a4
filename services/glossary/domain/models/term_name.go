package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TermName is a value object representing a valid glossary term name.
// Encapsulates the structural rules: trimmed non-empty, at most 255
// characters.
type TermName string

// MaxTermNameLength bounds name storage per record.
const MaxTermNameLength = 255

// NewTermName trims s and constructs a valid TermName, or returns an error
// if constraints are violated.
func NewTermName(s string) (TermName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("term name must not be empty")
	}
	// Counted in runes, matching the validator's max tag and the VARCHAR(255)
	// column, both of which count characters rather than bytes.
	if utf8.RuneCountInString(s) > MaxTermNameLength {
		return "", fmt.Errorf("term name must not exceed %d characters", MaxTermNameLength)
	}
	return TermName(s), nil
}

// String returns the underlying string value.
func (n TermName) String() string {
	return string(n)
}
