package reviews

import (
	"strings"
	"testing"
)

func TestValidateUser(t *testing.T) {
	if _, err := ValidateUser("jane"); err != nil {
		t.Fatalf("4 characters should pass: %v", err)
	}
	if _, err := ValidateUser("jan"); err == nil {
		t.Fatal("3 characters should fail")
	}
}

func TestValidateReviewLengthBounds(t *testing.T) {
	if _, err := ValidateReview(strings.Repeat("x", 10)); err != nil {
		t.Fatalf("10 characters should pass: %v", err)
	}
	if _, err := ValidateReview(strings.Repeat("x", 280)); err != nil {
		t.Fatalf("280 characters should pass: %v", err)
	}
	if _, err := ValidateReview(strings.Repeat("x", 9)); err == nil {
		t.Fatal("9 characters should fail")
	}
	if _, err := ValidateReview(strings.Repeat("x", 281)); err == nil {
		t.Fatal("281 characters should fail")
	}
}

func TestValidateReviewCountsCharactersNotBytes(t *testing.T) {
	if _, err := ValidateReview(strings.Repeat("日", 100)); err != nil {
		t.Fatalf("100 multibyte characters should pass: %v", err)
	}
	if _, err := ValidateReview(strings.Repeat("日", 280)); err != nil {
		t.Fatalf("280 multibyte characters should pass: %v", err)
	}
	if _, err := ValidateReview(strings.Repeat("日", 9)); err == nil {
		t.Fatal("9 multibyte characters should fail")
	}
}

func TestValidateUserCountsCharactersNotBytes(t *testing.T) {
	if _, err := ValidateUser("田中太郎"); err != nil {
		t.Fatalf("4 multibyte characters should pass: %v", err)
	}
	if _, err := ValidateUser("田中太"); err == nil {
		t.Fatal("3 multibyte characters should fail")
	}
}

func TestValidateProduct(t *testing.T) {
	for _, v := range []interface{}{float64(1), float64(42), "7"} {
		if _, err := ValidateProduct(v); err != nil {
			t.Fatalf("%v should pass: %v", v, err)
		}
	}
	for _, v := range []interface{}{float64(0), "-1", "abc", float64(1.5), nil} {
		if _, err := ValidateProduct(v); err == nil {
			t.Fatalf("%v should fail", v)
		}
	}
}

func TestValidateRating(t *testing.T) {
	for _, v := range []interface{}{float64(1), float64(5), "3", "5"} {
		if _, err := ValidateRating(v); err != nil {
			t.Fatalf("%v should pass: %v", v, err)
		}
	}
	for _, v := range []interface{}{float64(0), float64(6), "6", "0", "x", nil} {
		if _, err := ValidateRating(v); err == nil {
			t.Fatalf("%v should fail", v)
		}
	}
}

func TestBuildCreateCoercesNumericStrings(t *testing.T) {
	def := Definition()

	fields, err := def.BuildCreate(map[string]interface{}{
		"user":    "jane",
		"product": "7",
		"review":  "Sturdy and well made",
		"rating":  "5",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["product"] != int64(7) || fields["rating"] != int64(5) {
		t.Fatalf("expected coerced integers, got %v", fields)
	}
}

func TestBuildPatchSingleField(t *testing.T) {
	def := Definition()

	patch, err := def.BuildPatch(map[string]interface{}{"rating": float64(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patch) != 1 || patch["rating"] != int64(4) {
		t.Fatalf("unexpected patch: %v", patch)
	}

	if _, err := def.BuildPatch(map[string]interface{}{}); err == nil {
		t.Fatal("expected error for empty patch")
	}
}
