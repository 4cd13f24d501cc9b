package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"giant-cutie", true},
		{"lana", true},
		{"web3-101", true},
		{"", false},
		{"Giant-Cutie", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"has space", false},
		{"../etc", false},
	}
	for _, tt := range tests {
		if got := IsSlug(tt.in); got != tt.want {
			t.Errorf("IsSlug(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatValidationError(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	v := validator.New()
	err := v.Struct(input{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := FormatValidationError(err)
	want := "Name is required; Email must be a valid email"
	if got != want {
		t.Errorf("FormatValidationError() = %q, want %q", got, want)
	}
}
