// Package orders defines the order resource.
package orders

import (
	"fmt"
	"net/mail"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/internal/resource"
)

// Product is a line item inside an order.
type Product struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int64   `bson:"quantity" json:"quantity"`
}

// Order is a customer order document. TotalPrice and CreatedAt are assigned
// by the server on create and never taken from the request.
type Order struct {
	ID            int64     `bson:"_id" json:"id"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	Products      []Product `bson:"products" json:"products"`
	TotalPrice    float64   `bson:"totalPrice" json:"totalPrice"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// ValidateEmail checks that the value is a well-formed email address.
func ValidateEmail(value interface{}) (string, error) {
	email, ok := value.(string)
	if !ok {
		return "", resource.NewValidationError("customerEmail", "Customer email must be a string")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", resource.NewValidationError("customerEmail", "Customer email is not a valid email address")
	}
	return email, nil
}

// ValidateProducts checks the product list: it must be non-empty and every
// item needs an id, a name, a non-negative price, and a positive quantity.
func ValidateProducts(value interface{}) ([]Product, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, resource.NewValidationError("products", "Products must be a list")
	}
	if len(items) == 0 {
		return nil, resource.NewValidationError("products", "The order must include at least one product")
	}

	products := make([]Product, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, resource.NewValidationError("products", fmt.Sprintf("Product %d must be an object", i))
		}

		id, ok := entry["id"].(string)
		if !ok || id == "" {
			return nil, resource.NewValidationError("products", fmt.Sprintf("Product %d must have an id", i))
		}
		name, ok := entry["name"].(string)
		if !ok || name == "" {
			return nil, resource.NewValidationError("products", fmt.Sprintf("Product %d must have a name", i))
		}

		price, ok := toFloat(entry["price"])
		if !ok || price < 0 {
			return nil, resource.NewValidationError("products", "The price must be a non-negative number")
		}

		quantity, ok := toInt(entry["quantity"])
		if !ok || quantity <= 0 {
			return nil, resource.NewValidationError("products", "The quantity must be greater than zero")
		}

		products = append(products, Product{ID: id, Name: name, Price: price, Quantity: quantity})
	}
	return products, nil
}

// TotalPrice sums price times quantity over the product list.
func TotalPrice(products []Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

// Definition describes the order resource for the generic handler.
func Definition() resource.Definition[Order] {
	return resource.Definition[Order]{
		Name:       "order",
		Collection: "orders",
		BuildCreate: func(raw map[string]interface{}) (bson.M, error) {
			emailValue, ok := raw["customerEmail"]
			if !ok {
				return nil, resource.NewValidationError("customerEmail", "Customer email is required")
			}
			email, err := ValidateEmail(emailValue)
			if err != nil {
				return nil, err
			}

			productsValue, ok := raw["products"]
			if !ok {
				return nil, resource.NewValidationError("products", "The order must include at least one product")
			}
			products, err := ValidateProducts(productsValue)
			if err != nil {
				return nil, err
			}

			return bson.M{
				"customerEmail": email,
				"products":      productsToBSON(products),
				"totalPrice":    TotalPrice(products),
				"createdAt":     time.Now().UTC(),
			}, nil
		},
		BuildPatch: func(raw map[string]interface{}) (bson.M, error) {
			patch := bson.M{}

			if emailValue, ok := raw["customerEmail"]; ok {
				email, err := ValidateEmail(emailValue)
				if err != nil {
					return nil, err
				}
				patch["customerEmail"] = email
			}

			if productsValue, ok := raw["products"]; ok {
				products, err := ValidateProducts(productsValue)
				if err != nil {
					return nil, err
				}
				patch["products"] = productsToBSON(products)
				patch["totalPrice"] = TotalPrice(products)
			}

			if len(patch) == 0 {
				return nil, resource.NewValidationError("order", "No updatable fields provided")
			}
			return patch, nil
		},
	}
}

func productsToBSON(products []Product) bson.A {
	out := make(bson.A, 0, len(products))
	for _, p := range products {
		out = append(out, bson.M{
			"id":       p.ID,
			"name":     p.Name,
			"price":    p.Price,
			"quantity": p.Quantity,
		})
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
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
