// Package categories defines the category resource.
package categories

import (
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/internal/resource"
)

// Category is a product category document.
type Category struct {
	ID   int64  `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

const (
	minNameLength = 3
	maxNameLength = 50
)

// ValidateName checks a category name. The name is trimmed before the
// length bounds apply.
func ValidateName(value interface{}) (string, error) {
	name, ok := value.(string)
	if !ok {
		return "", resource.NewValidationError("name", "Category name must be a string")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", resource.NewValidationError("name", "Category name cannot be empty")
	}
	length := utf8.RuneCountInString(trimmed)
	if length < minNameLength {
		return "", resource.NewValidationError("name", "Category name must have at least 3 characters")
	}
	if length > maxNameLength {
		return "", resource.NewValidationError("name", "Category name must have at most 50 characters")
	}
	return trimmed, nil
}

// Definition describes the category resource for the generic handler.
func Definition() resource.Definition[Category] {
	return resource.Definition[Category]{
		Name:       "category",
		Collection: "categories",
		BuildCreate: func(raw map[string]interface{}) (bson.M, error) {
			value, ok := raw["name"]
			if !ok {
				return nil, resource.NewValidationError("name", "Category name is required")
			}
			name, err := ValidateName(value)
			if err != nil {
				return nil, err
			}
			return bson.M{"name": name}, nil
		},
		BuildPatch: func(raw map[string]interface{}) (bson.M, error) {
			value, ok := raw["name"]
			if !ok {
				return nil, resource.NewValidationError("name", "Category name is required")
			}
			name, err := ValidateName(value)
			if err != nil {
				return nil, err
			}
			return bson.M{"name": name}, nil
		},
	}
}
