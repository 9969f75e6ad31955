package payments

import (
	"errors"
	"testing"

	"github.com/atemporal/shop-api/internal/resource"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"alias":  "personal",
		"name":   "Jane Doe",
		"number": "4111111111111111",
		"month":  "09",
		"year":   "2030",
		"cvv":    "123",
	}
}

func TestValidateFieldBoundaries(t *testing.T) {
	tests := []struct {
		field string
		pass  string
		fail  string
	}{
		{field: "alias", pass: "card", fail: "abc"},
		{field: "name", pass: "Jane", fail: "Jan"},
		{field: "number", pass: "4111111111111111", fail: "411111111111111"},
		{field: "month", pass: "09", fail: "9"},
		{field: "year", pass: "2030", fail: "203"},
		{field: "cvv", pass: "123", fail: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if _, err := ValidateField(tt.field, tt.pass); err != nil {
				t.Fatalf("%q should pass: %v", tt.pass, err)
			}
			_, err := ValidateField(tt.field, tt.fail)
			var verr *resource.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("%q should fail with validation error, got %v", tt.fail, err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %q in error, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestValidateFieldCountsCharactersNotBytes(t *testing.T) {
	if _, err := ValidateField("alias", "カード名義"); err != nil {
		t.Fatalf("5 multibyte characters should pass: %v", err)
	}
	if _, err := ValidateField("alias", "カード"); err == nil {
		t.Fatal("3 multibyte characters should fail")
	}
}

func TestBuildCreateRequiresAllFields(t *testing.T) {
	def := Definition()

	if _, err := def.BuildCreate(validPayload()); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	for field := range validPayload() {
		payload := validPayload()
		delete(payload, field)
		if _, err := def.BuildCreate(payload); err == nil {
			t.Fatalf("expected error when %s is missing", field)
		}
	}
}

func TestBuildPatchValidatesOnlyPresentFields(t *testing.T) {
	def := Definition()

	patch, err := def.BuildPatch(map[string]interface{}{"alias": "business"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patch) != 1 || patch["alias"] != "business" {
		t.Fatalf("unexpected patch: %v", patch)
	}

	if _, err := def.BuildPatch(map[string]interface{}{"cvv": "12"}); err == nil {
		t.Fatal("expected error for short cvv")
	}

	if _, err := def.BuildPatch(map[string]interface{}{"other": "x"}); err == nil {
		t.Fatal("expected error when no known fields are present")
	}
}
