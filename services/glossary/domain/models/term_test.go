package models

import (
	"testing"
)

func TestNewTerm(t *testing.T) {
	name := TermName("API")

	t.Run("valid term", func(t *testing.T) {
		term, err := NewTerm(name, "Application Programming Interface")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if term.Name != name {
			t.Errorf("Name: got %q, want %q", term.Name, name)
		}
		if term.Description != "Application Programming Interface" {
			t.Errorf("unexpected description: %q", term.Description)
		}
		if term.ID != 0 {
			t.Errorf("expected zero ID before save, got %d", term.ID)
		}
		if !term.CreatedAt.IsZero() || !term.UpdatedAt.IsZero() {
			t.Error("expected zero timestamps before save")
		}
	})

	t.Run("description is trimmed", func(t *testing.T) {
		term, err := NewTerm(name, "  padded  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if term.Description != "padded" {
			t.Errorf("expected trimmed description, got %q", term.Description)
		}
	})

	t.Run("empty description returns error", func(t *testing.T) {
		if _, err := NewTerm(name, ""); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("whitespace description returns error", func(t *testing.T) {
		if _, err := NewTerm(name, "   \n "); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestTerm_Rename(t *testing.T) {
	term, err := NewTerm(TermName("old"), "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	term.Rename(TermName("new"))
	if term.Name.String() != "new" {
		t.Fatalf("expected renamed term, got %q", term.Name)
	}
}

func TestTerm_Redescribe(t *testing.T) {
	term, err := NewTerm(TermName("API"), "old description")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("replaces trimmed description", func(t *testing.T) {
		if err := term.Redescribe(" new description "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if term.Description != "new description" {
			t.Errorf("unexpected description: %q", term.Description)
		}
	})

	t.Run("blank description rejected and old value kept", func(t *testing.T) {
		if err := term.Redescribe("   "); err == nil {
			t.Fatal("expected error, got nil")
		}
		if term.Description != "new description" {
			t.Errorf("description changed on failed Redescribe: %q", term.Description)
		}
	})
}
