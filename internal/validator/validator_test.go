package validator

import (
	"errors"
	"testing"

	"alfredoptarigan/resume-portal/internal/models"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Struct(&models.RegisterRequest{
		Username: "jd",
		Email:    "not-an-email",
		Password: "",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	for _, field := range []string{"username", "email", "password"} {
		if _, ok := valErr.Errors[field]; !ok {
			t.Fatalf("expected error for field %q, got %v", field, valErr.Errors)
		}
	}
}

func TestStructAcceptsValidPayload(t *testing.T) {
	v := New()

	err := v.Struct(&models.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
