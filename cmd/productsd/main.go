// Command productsd serves the product catalog API.
package main

import (
	"fmt"
	"os"

	"github.com/atemporal/shop-api/internal/app"
	"github.com/atemporal/shop-api/internal/products"
	"github.com/atemporal/shop-api/internal/resource"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
)

func main() {
	cmd := app.NewCommand(app.Options{
		Name:        "products",
		Description: "Product catalog service",
		Register: func(r router.Router, exec resource.Executor, log logger.Logger) {
			def := products.Definition()
			store := resource.NewStore[products.Product](def.Name, def.Collection, exec, log)
			resource.NewHandler(def, store, log).Register(r)
		},
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
