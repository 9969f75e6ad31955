package resource

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Executor abstracts the document operations the store needs from the
// underlying database. The production implementation wraps the MongoDB
// adapter; tests substitute an in-memory fake.
type Executor interface {
	// FindAll returns every document in the collection.
	FindAll(ctx context.Context, collection string) ([]bson.M, error)

	// FindOne returns the first document matching filter, or (nil, nil)
	// when no document matches.
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error)

	// FindMaxID returns the highest _id in the collection. The boolean is
	// false when the collection is empty.
	FindMaxID(ctx context.Context, collection string) (int64, bool, error)

	// InsertOne stores a new document.
	InsertOne(ctx context.Context, collection string, doc bson.M) error

	// UpdateOne applies a $set update to the documents matching filter and
	// returns the number of documents actually modified.
	UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, error)

	// DeleteOne removes the first document matching filter and returns the
	// number of documents deleted.
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
}
