package resource

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
)

// Definition describes one resource: its names and how request payloads
// are validated and turned into document fields.
type Definition[T any] struct {
	// Name is the singular resource name used in messages ("category").
	Name string

	// Collection is the plural collection name, also the URL segment
	// ("categories").
	Collection string

	// BuildCreate validates a create payload and returns the document
	// fields to store. It returns a *ValidationError on bad input.
	BuildCreate func(raw map[string]interface{}) (bson.M, error)

	// BuildPatch validates an update payload and returns the fields to
	// merge into the stored document. It returns a *ValidationError on
	// bad input.
	BuildPatch func(raw map[string]interface{}) (bson.M, error)
}

// Handler serves the REST endpoints for one resource.
type Handler[T any] struct {
	def    Definition[T]
	store  *Store[T]
	logger logger.Logger
}

// NewHandler creates a handler for the given resource definition and store.
func NewHandler[T any](def Definition[T], store *Store[T], log logger.Logger) *Handler[T] {
	return &Handler[T]{def: def, store: store, logger: log}
}

// Register mounts the resource routes on the router.
func (h *Handler[T]) Register(r router.Router) {
	base := "/api/v1/" + h.def.Collection
	r.GET(base, h.List)
	r.POST(base, h.Create)
	r.PUT(base+"/:id", h.Update)
	r.DELETE(base+"/:id", h.Delete)
}

// List handles GET /api/v1/{collection}.
func (h *Handler[T]) List(c router.Context) error {
	items, err := h.store.List(c.Request().Context())
	if err != nil {
		return h.storageFailure(c, err, fmt.Sprintf("Error fetching all %s", h.def.Collection))
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/v1/{collection}.
func (h *Handler[T]) Create(c router.Context) error {
	raw, ok := h.bindBody(c)
	if !ok {
		return nil
	}

	fields, err := h.def.BuildCreate(raw)
	if err != nil {
		return h.validationFailure(c, err)
	}

	item, err := h.store.Create(c.Request().Context(), fields)
	if err != nil {
		return h.storageFailure(c, err, fmt.Sprintf("Error creating the %s", h.def.Name))
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/v1/{collection}/:id.
func (h *Handler[T]) Update(c router.Context) error {
	id, ok := h.parseID(c)
	if !ok {
		return nil
	}

	raw, ok := h.bindBody(c)
	if !ok {
		return nil
	}

	patch, err := h.def.BuildPatch(raw)
	if err != nil {
		return h.validationFailure(c, err)
	}

	result, err := h.store.UpdateByID(c.Request().Context(), id, patch)
	if err != nil {
		return h.storageFailure(c, err, fmt.Sprintf("Error updating the %s", h.def.Name))
	}

	switch result.Status {
	case UpdateStatusNotFound:
		return h.notFound(c)
	case UpdateStatusUnchanged:
		return c.JSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("The %s is already up to date", h.def.Name),
		})
	default:
		return c.JSON(http.StatusOK, result.Document)
	}
}

// Delete handles DELETE /api/v1/{collection}/:id.
func (h *Handler[T]) Delete(c router.Context) error {
	id, ok := h.parseID(c)
	if !ok {
		return nil
	}

	item, err := h.store.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return h.storageFailure(c, err, fmt.Sprintf("Error deleting the %s", h.def.Name))
	}
	if item == nil {
		return h.notFound(c)
	}
	return c.JSON(http.StatusOK, item)
}

// bindBody decodes the JSON request body into a map. It writes a 400
// response and returns false when the body is missing, malformed, or empty.
func (h *Handler[T]) bindBody(c router.Context) (map[string]interface{}, bool) {
	var raw map[string]interface{}
	if err := c.Bind(&raw); err != nil || len(raw) == 0 {
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid data"})
		return nil, false
	}
	return raw, true
}

// parseID extracts the :id path parameter. A non-integer segment cannot
// name a document, so it is reported as not found.
func (h *Handler[T]) parseID(c router.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = h.notFound(c)
		return 0, false
	}
	return id, true
}

func (h *Handler[T]) notFound(c router.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{
		"error": fmt.Sprintf("%s not found", capitalize(h.def.Name)),
	})
}

func (h *Handler[T]) validationFailure(c router.Context, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": map[string]string{verr.Field: verr.Reason},
		})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid data"})
}

func (h *Handler[T]) storageFailure(c router.Context, err error, message string) error {
	h.logger.WithContext(c.Request().Context()).Error("storage operation failed",
		"resource", h.def.Name,
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": message})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
