// Command categoriesd serves the category catalog API.
package main

import (
	"fmt"
	"os"

	"github.com/atemporal/shop-api/internal/app"
	"github.com/atemporal/shop-api/internal/categories"
	"github.com/atemporal/shop-api/internal/resource"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
)

func main() {
	cmd := app.NewCommand(app.Options{
		Name:        "categories",
		Description: "Product category service",
		Register: func(r router.Router, exec resource.Executor, log logger.Logger) {
			def := categories.Definition()
			store := resource.NewStore[categories.Category](def.Name, def.Collection, exec, log)
			resource.NewHandler(def, store, log).Register(r)
		},
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
