// Package services contains stateless domain services for the glossary
// bounded context. They enforce business rules that operate purely on domain
// types and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"unicode"

	"github.com/ghuser/glossary/services/glossary/domain/models"
)

// ValidateName enforces business rules on TermName beyond the structural
// constraints enforced by the constructor (trimmed non-empty, length ≤ 255).
func ValidateName(name models.TermName) error {
	for _, r := range name.String() {
		if unicode.IsControl(r) {
			return fmt.Errorf("term name must not contain control characters")
		}
	}
	return nil
}

// ValidateDescription enforces business rules on a term description: it must
// contain at least one printable non-space character.
func ValidateDescription(description string) error {
	for _, r := range description {
		if !unicode.IsSpace(r) && unicode.IsPrint(r) {
			return nil
		}
	}
	return fmt.Errorf("description must contain printable characters")
}

// ValidateTermForSave performs cross-field validation on a Term aggregate
// before it reaches the repository. It assumes the Term was built via
// models.NewTerm, so structural constraints already hold.
func ValidateTermForSave(term *models.Term) error {
	if term == nil {
		return fmt.Errorf("term cannot be nil")
	}

	if err := ValidateName(term.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if err := ValidateDescription(term.Description); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}

	return nil
}
