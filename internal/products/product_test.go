package products

import "testing"

func TestValidateName(t *testing.T) {
	if _, err := ValidateName("Lamp"); err != nil {
		t.Fatalf("4 characters should pass: %v", err)
	}
	if _, err := ValidateName("Pen"); err == nil {
		t.Fatal("3 characters should fail")
	}
	if _, err := ValidateName(42); err == nil {
		t.Fatal("non-string should fail")
	}
}

func TestValidateNameCountsCharactersNotBytes(t *testing.T) {
	if _, err := ValidateName("電気スタンド"); err != nil {
		t.Fatalf("6 multibyte characters should pass: %v", err)
	}
	if _, err := ValidateName("ランプ"); err == nil {
		t.Fatal("3 multibyte characters should fail")
	}
}

func TestValidatePrice(t *testing.T) {
	valid := []interface{}{"49.99", "$49.99", "0", "1,299.00", float64(12.5)}
	for _, v := range valid {
		if _, err := ValidatePrice(v); err != nil {
			t.Fatalf("%v should pass: %v", v, err)
		}
	}

	// Stripping removes the sign, so "-10" is read as 10 and accepted.
	if _, err := ValidatePrice("-10"); err != nil {
		t.Fatalf("signed price is read as its digits: %v", err)
	}

	invalid := []interface{}{"free", "", nil, true}
	for _, v := range invalid {
		if _, err := ValidatePrice(v); err == nil {
			t.Fatalf("%v should fail", v)
		}
	}
}

func TestValidatePriceKeepsOriginalForm(t *testing.T) {
	price, err := ValidatePrice("$1,299.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != "$1,299.00" {
		t.Fatalf("expected original string preserved, got %q", price)
	}
}

func TestValidateCategory(t *testing.T) {
	if _, err := ValidateCategory("Toys"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ValidateCategory("TV"); err == nil {
		t.Fatal("2 characters should fail")
	}
	if _, err := ValidateCategory("照明器具"); err != nil {
		t.Fatalf("4 multibyte characters should pass: %v", err)
	}
	if _, err := ValidateCategory("照明"); err == nil {
		t.Fatal("2 multibyte characters should fail")
	}
}

func TestBuildCreate(t *testing.T) {
	def := Definition()

	fields, err := def.BuildCreate(map[string]interface{}{
		"name":     "Desk Lamp",
		"price":    "29.90",
		"category": "Lighting",
		"image":    "lamp.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["image"] != "lamp.png" {
		t.Fatalf("expected image kept, got %v", fields)
	}

	if _, err := def.BuildCreate(map[string]interface{}{
		"name":     "Desk Lamp",
		"category": "Lighting",
	}); err == nil {
		t.Fatal("expected error when price is missing")
	}
}

func TestBuildPatchPartialFields(t *testing.T) {
	def := Definition()

	patch, err := def.BuildPatch(map[string]interface{}{"price": "19.90"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patch) != 1 || patch["price"] != "19.90" {
		t.Fatalf("unexpected patch: %v", patch)
	}

	if _, err := def.BuildPatch(map[string]interface{}{"price": "-5"}); err == nil {
		t.Fatal("expected error for negative price")
	}
}
