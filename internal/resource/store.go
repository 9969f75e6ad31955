package resource

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/atemporal/shop-api/pkg/observability/logger"
)

// UpdateStatus classifies the outcome of an UpdateByID call.
type UpdateStatus int

const (
	// UpdateStatusNotFound means no document with the given ID exists.
	UpdateStatusNotFound UpdateStatus = iota
	// UpdateStatusUnchanged means the document exists but the patch left
	// every field at its current value.
	UpdateStatusUnchanged
	// UpdateStatusUpdated means at least one field changed.
	UpdateStatusUpdated
)

// UpdateResult carries the outcome of an update together with the document
// it applies to. Document is nil when Status is UpdateStatusNotFound.
type UpdateResult[T any] struct {
	Status   UpdateStatus
	Document *T
}

// Store provides CRUD operations over a single collection of documents of
// type T. IDs are assigned sequentially on create: 1 for an empty
// collection, otherwise the current maximum plus one. Two concurrent
// creates can race to the same ID; callers that need stronger guarantees
// must serialize creates externally.
type Store[T any] struct {
	name       string
	collection string
	exec       Executor
	logger     logger.Logger
}

// NewStore creates a store for the named resource. name is the singular
// resource name used in error messages, collection the backing collection.
func NewStore[T any](name, collection string, exec Executor, log logger.Logger) *Store[T] {
	return &Store[T]{
		name:       name,
		collection: collection,
		exec:       exec,
		logger:     log,
	}
}

// Name returns the singular resource name.
func (s *Store[T]) Name() string {
	return s.name
}

// List returns every document in the collection. The slice is empty, never
// nil, when the collection holds no documents.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	docs, err := s.exec.FindAll(ctx, s.collection)
	if err != nil {
		return nil, storageErr(s.name, "list", err)
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := decode[T](doc)
		if err != nil {
			return nil, storageErr(s.name, "list", err)
		}
		out = append(out, *item)
	}
	return out, nil
}

// GetByID returns the document with the given ID, or (nil, nil) when no
// such document exists.
func (s *Store[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	doc, err := s.exec.FindOne(ctx, s.collection, bson.M{"_id": id})
	if err != nil {
		return nil, storageErr(s.name, "get", err)
	}
	if doc == nil {
		return nil, nil
	}

	item, err := decode[T](doc)
	if err != nil {
		return nil, storageErr(s.name, "get", err)
	}
	return item, nil
}

// Create inserts a new document built from fields, assigning the next
// sequential ID, and returns the stored document.
func (s *Store[T]) Create(ctx context.Context, fields bson.M) (*T, error) {
	maxID, found, err := s.exec.FindMaxID(ctx, s.collection)
	if err != nil {
		return nil, storageErr(s.name, "create", err)
	}

	nextID := int64(1)
	if found {
		nextID = maxID + 1
	}

	doc := bson.M{"_id": nextID}
	for k, v := range fields {
		doc[k] = v
	}

	if err := s.exec.InsertOne(ctx, s.collection, doc); err != nil {
		return nil, storageErr(s.name, "create", err)
	}

	s.logger.Info("document created",
		"resource", s.name,
		"id", nextID,
	)

	item, err := decode[T](doc)
	if err != nil {
		return nil, storageErr(s.name, "create", err)
	}
	return item, nil
}

// UpdateByID applies patch to the document with the given ID as a merge:
// only the fields present in patch are written, every other field keeps its
// stored value. The result distinguishes a missing document, a patch that
// changed nothing, and an applied update.
func (s *Store[T]) UpdateByID(ctx context.Context, id int64, patch bson.M) (UpdateResult[T], error) {
	filter := bson.M{"_id": id}

	existing, err := s.exec.FindOne(ctx, s.collection, filter)
	if err != nil {
		return UpdateResult[T]{}, storageErr(s.name, "update", err)
	}
	if existing == nil {
		return UpdateResult[T]{Status: UpdateStatusNotFound}, nil
	}

	modified, err := s.exec.UpdateOne(ctx, s.collection, filter, bson.M{"$set": patch})
	if err != nil {
		return UpdateResult[T]{}, storageErr(s.name, "update", err)
	}

	if modified == 0 {
		item, err := decode[T](existing)
		if err != nil {
			return UpdateResult[T]{}, storageErr(s.name, "update", err)
		}
		return UpdateResult[T]{Status: UpdateStatusUnchanged, Document: item}, nil
	}

	updated, err := s.exec.FindOne(ctx, s.collection, filter)
	if err != nil {
		return UpdateResult[T]{}, storageErr(s.name, "update", err)
	}
	if updated == nil {
		// Deleted between the update and the re-fetch.
		return UpdateResult[T]{Status: UpdateStatusNotFound}, nil
	}

	s.logger.Info("document updated",
		"resource", s.name,
		"id", id,
	)

	item, err := decode[T](updated)
	if err != nil {
		return UpdateResult[T]{}, storageErr(s.name, "update", err)
	}
	return UpdateResult[T]{Status: UpdateStatusUpdated, Document: item}, nil
}

// DeleteByID removes the document with the given ID and returns it as it
// was before deletion, or (nil, nil) when no such document exists.
func (s *Store[T]) DeleteByID(ctx context.Context, id int64) (*T, error) {
	filter := bson.M{"_id": id}

	existing, err := s.exec.FindOne(ctx, s.collection, filter)
	if err != nil {
		return nil, storageErr(s.name, "delete", err)
	}
	if existing == nil {
		return nil, nil
	}

	deleted, err := s.exec.DeleteOne(ctx, s.collection, filter)
	if err != nil {
		return nil, storageErr(s.name, "delete", err)
	}
	if deleted == 0 {
		return nil, nil
	}

	s.logger.Info("document deleted",
		"resource", s.name,
		"id", id,
	)

	item, err := decode[T](existing)
	if err != nil {
		return nil, storageErr(s.name, "delete", err)
	}
	return item, nil
}

// decode converts a raw document into the typed representation through the
// bson codec, so struct tags drive the field mapping.
func decode[T any](doc bson.M) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var item T
	if err := bson.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
