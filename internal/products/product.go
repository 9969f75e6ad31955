// Package products defines the product resource.
package products

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/internal/resource"
)

// Product is a catalog product document. Price keeps the submitted string
// form, currency symbols included; only its numeric value is validated.
type Product struct {
	ID       int64  `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Price    string `bson:"price" json:"price"`
	Category string `bson:"category" json:"category"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ValidateName checks the product name.
func ValidateName(value interface{}) (string, error) {
	name, ok := value.(string)
	if !ok {
		return "", resource.NewValidationError("name", "The name of the product must be a string")
	}
	if utf8.RuneCountInString(name) < 4 {
		return "", resource.NewValidationError("name", "The name of the product must have at least 4 characters")
	}
	return name, nil
}

// ValidatePrice checks that the value is numeric and non-negative once
// every character other than digits and dots is stripped.
func ValidatePrice(value interface{}) (string, error) {
	price, ok := value.(string)
	if !ok {
		if n, isNum := value.(float64); isNum {
			price = strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			return "", resource.NewValidationError("price", "The price must be a non-negative number")
		}
	}
	cleaned := nonNumeric.ReplaceAllString(price, "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return "", resource.NewValidationError("price", "The price must be a non-negative number")
	}
	return price, nil
}

// ValidateCategory checks the product category name.
func ValidateCategory(value interface{}) (string, error) {
	category, ok := value.(string)
	if !ok {
		return "", resource.NewValidationError("category", "The category of the product must be a string")
	}
	if utf8.RuneCountInString(category) < 3 {
		return "", resource.NewValidationError("category", "The category of the product must have at least 3 characters")
	}
	return category, nil
}

// Definition describes the product resource for the generic handler.
func Definition() resource.Definition[Product] {
	return resource.Definition[Product]{
		Name:       "product",
		Collection: "products",
		BuildCreate: func(raw map[string]interface{}) (bson.M, error) {
			nameValue, ok := raw["name"]
			if !ok {
				return nil, resource.NewValidationError("name", "The name of the product is required")
			}
			name, err := ValidateName(nameValue)
			if err != nil {
				return nil, err
			}

			priceValue, ok := raw["price"]
			if !ok {
				return nil, resource.NewValidationError("price", "The price of the product is required")
			}
			price, err := ValidatePrice(priceValue)
			if err != nil {
				return nil, err
			}

			categoryValue, ok := raw["category"]
			if !ok {
				return nil, resource.NewValidationError("category", "The category of the product is required")
			}
			category, err := ValidateCategory(categoryValue)
			if err != nil {
				return nil, err
			}

			fields := bson.M{"name": name, "price": price, "category": category}
			if image, ok := raw["image"].(string); ok && image != "" {
				fields["image"] = image
			}
			return fields, nil
		},
		BuildPatch: func(raw map[string]interface{}) (bson.M, error) {
			patch := bson.M{}

			if value, ok := raw["name"]; ok {
				name, err := ValidateName(value)
				if err != nil {
					return nil, err
				}
				patch["name"] = name
			}
			if value, ok := raw["price"]; ok {
				price, err := ValidatePrice(value)
				if err != nil {
					return nil, err
				}
				patch["price"] = price
			}
			if value, ok := raw["category"]; ok {
				category, err := ValidateCategory(value)
				if err != nil {
					return nil, err
				}
				patch["category"] = category
			}
			if image, ok := raw["image"].(string); ok {
				patch["image"] = image
			}

			if len(patch) == 0 {
				return nil, resource.NewValidationError("product", "No updatable fields provided")
			}
			return patch, nil
		},
	}
}
