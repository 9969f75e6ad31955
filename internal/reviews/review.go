// Package reviews defines the product review resource.
package reviews

import (
	"strconv"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/internal/resource"
)

// Review is a product review document.
type Review struct {
	ID      int64  `bson:"_id" json:"id"`
	User    string `bson:"user" json:"user"`
	Product int64  `bson:"product" json:"product"`
	Review  string `bson:"review" json:"review"`
	Rating  int64  `bson:"rating" json:"rating"`
}

// ValidateUser checks the reviewer name.
func ValidateUser(value interface{}) (string, error) {
	user, ok := value.(string)
	if !ok {
		return "", resource.NewValidationError("user", "User must be a string")
	}
	if utf8.RuneCountInString(user) < 4 {
		return "", resource.NewValidationError("user", "User must have at least 4 characters")
	}
	return user, nil
}

// ValidateReview checks the review text length bounds.
func ValidateReview(value interface{}) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", resource.NewValidationError("review", "Review must be a string")
	}
	length := utf8.RuneCountInString(text)
	if length < 10 {
		return "", resource.NewValidationError("review", "Review must have at least 10 characters")
	}
	if length > 280 {
		return "", resource.NewValidationError("review", "Review must have at most 280 characters")
	}
	return text, nil
}

// ValidateProduct checks the reviewed product ID. Numeric strings are
// accepted alongside JSON numbers.
func ValidateProduct(value interface{}) (int64, error) {
	id, ok := toInt(value)
	if !ok || id < 1 {
		return 0, resource.NewValidationError("product", "Product must be an integer greater than 0")
	}
	return id, nil
}

// ValidateRating checks the star rating. Numeric strings are accepted
// alongside JSON numbers.
func ValidateRating(value interface{}) (int64, error) {
	rating, ok := toInt(value)
	if !ok || rating < 1 || rating > 5 {
		return 0, resource.NewValidationError("rating", "Rating must be an integer between 1 and 5")
	}
	return rating, nil
}

// Definition describes the review resource for the generic handler.
func Definition() resource.Definition[Review] {
	return resource.Definition[Review]{
		Name:       "review",
		Collection: "reviews",
		BuildCreate: func(raw map[string]interface{}) (bson.M, error) {
			userValue, ok := raw["user"]
			if !ok {
				return nil, resource.NewValidationError("user", "User is required")
			}
			user, err := ValidateUser(userValue)
			if err != nil {
				return nil, err
			}

			productValue, ok := raw["product"]
			if !ok {
				return nil, resource.NewValidationError("product", "Product is required")
			}
			product, err := ValidateProduct(productValue)
			if err != nil {
				return nil, err
			}

			textValue, ok := raw["review"]
			if !ok {
				return nil, resource.NewValidationError("review", "Review is required")
			}
			text, err := ValidateReview(textValue)
			if err != nil {
				return nil, err
			}

			ratingValue, ok := raw["rating"]
			if !ok {
				return nil, resource.NewValidationError("rating", "Rating is required")
			}
			rating, err := ValidateRating(ratingValue)
			if err != nil {
				return nil, err
			}

			return bson.M{
				"user":    user,
				"product": product,
				"review":  text,
				"rating":  rating,
			}, nil
		},
		BuildPatch: func(raw map[string]interface{}) (bson.M, error) {
			patch := bson.M{}

			if value, ok := raw["user"]; ok {
				user, err := ValidateUser(value)
				if err != nil {
					return nil, err
				}
				patch["user"] = user
			}
			if value, ok := raw["product"]; ok {
				product, err := ValidateProduct(value)
				if err != nil {
					return nil, err
				}
				patch["product"] = product
			}
			if value, ok := raw["review"]; ok {
				text, err := ValidateReview(value)
				if err != nil {
					return nil, err
				}
				patch["review"] = text
			}
			if value, ok := raw["rating"]; ok {
				rating, err := ValidateRating(value)
				if err != nil {
					return nil, err
				}
				patch["rating"] = rating
			}

			if len(patch) == 0 {
				return nil, resource.NewValidationError("review", "No updatable fields provided")
			}
			return patch, nil
		},
	}
}

func toInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
