// Package payments defines the payment method resource.
package payments

import (
	"fmt"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/internal/resource"
)

// Payment is a stored payment method document.
type Payment struct {
	ID     int64  `bson:"_id" json:"id"`
	Alias  string `bson:"alias" json:"alias"`
	Name   string `bson:"name" json:"name"`
	Number string `bson:"number" json:"number"`
	Month  string `bson:"month" json:"month"`
	Year   string `bson:"year" json:"year"`
	CVV    string `bson:"cvv" json:"cvv"`
}

// fieldRule pairs a payload field with its minimum length and the label
// used in error messages.
type fieldRule struct {
	field     string
	label     string
	minLength int
}

var rules = []fieldRule{
	{field: "alias", label: "Alias", minLength: 4},
	{field: "name", label: "Name", minLength: 4},
	{field: "number", label: "Number", minLength: 16},
	{field: "month", label: "Month", minLength: 2},
	{field: "year", label: "Year", minLength: 4},
	{field: "cvv", label: "CVV", minLength: 3},
}

// ValidateField checks a single payment field against its length rule.
func ValidateField(field string, value interface{}) (string, error) {
	for _, rule := range rules {
		if rule.field != field {
			continue
		}
		s, ok := value.(string)
		if !ok {
			return "", resource.NewValidationError(field, fmt.Sprintf("%s must be a string", rule.label))
		}
		if utf8.RuneCountInString(s) < rule.minLength {
			return "", resource.NewValidationError(field,
				fmt.Sprintf("%s must have at least %d characters", rule.label, rule.minLength))
		}
		return s, nil
	}
	return "", resource.NewValidationError(field, "Unknown field")
}

// Definition describes the payment resource for the generic handler.
func Definition() resource.Definition[Payment] {
	return resource.Definition[Payment]{
		Name:       "payment",
		Collection: "payments",
		BuildCreate: func(raw map[string]interface{}) (bson.M, error) {
			fields := bson.M{}
			for _, rule := range rules {
				value, ok := raw[rule.field]
				if !ok {
					return nil, resource.NewValidationError(rule.field,
						fmt.Sprintf("%s is required", rule.label))
				}
				s, err := ValidateField(rule.field, value)
				if err != nil {
					return nil, err
				}
				fields[rule.field] = s
			}
			return fields, nil
		},
		BuildPatch: func(raw map[string]interface{}) (bson.M, error) {
			patch := bson.M{}
			for _, rule := range rules {
				value, ok := raw[rule.field]
				if !ok {
					continue
				}
				s, err := ValidateField(rule.field, value)
				if err != nil {
					return nil, err
				}
				patch[rule.field] = s
			}
			if len(patch) == 0 {
				return nil, resource.NewValidationError("payment", "No updatable fields provided")
			}
			return patch, nil
		},
	}
}
