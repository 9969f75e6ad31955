// Command reviewsd serves the product review API.
package main

import (
	"fmt"
	"os"

	"github.com/atemporal/shop-api/internal/app"
	"github.com/atemporal/shop-api/internal/resource"
	"github.com/atemporal/shop-api/internal/reviews"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
)

func main() {
	cmd := app.NewCommand(app.Options{
		Name:        "reviews",
		Description: "Product review service",
		Register: func(r router.Router, exec resource.Executor, log logger.Logger) {
			def := reviews.Definition()
			store := resource.NewStore[reviews.Review](def.Name, def.Collection, exec, log)
			resource.NewHandler(def, store, log).Register(r)
		},
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
