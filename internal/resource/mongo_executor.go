package resource

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/atemporal/shop-api/pkg/store/mongodb"
)

// MongoExecutor implements Executor on top of the MongoDB adapter.
type MongoExecutor struct {
	adapter *mongodb.Adapter
}

// NewMongoExecutor creates an executor backed by the given adapter.
func NewMongoExecutor(adapter *mongodb.Adapter) *MongoExecutor {
	return &MongoExecutor{adapter: adapter}
}

func (e *MongoExecutor) FindAll(ctx context.Context, collection string) ([]bson.M, error) {
	cursor, err := e.adapter.Find(ctx, collection, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (e *MongoExecutor) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := e.adapter.FindOne(ctx, collection, filter, &doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (e *MongoExecutor) FindMaxID(ctx context.Context, collection string) (int64, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var doc bson.M
	err := e.adapter.FindOne(ctx, collection, bson.M{}, &doc, opts)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return asInt64(doc["_id"]), true, nil
}

func (e *MongoExecutor) InsertOne(ctx context.Context, collection string, doc bson.M) error {
	_, err := e.adapter.InsertOne(ctx, collection, doc)
	return err
}

func (e *MongoExecutor) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
	result, err := e.adapter.UpdateOne(ctx, collection, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (e *MongoExecutor) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	result, err := e.adapter.DeleteOne(ctx, collection, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// asInt64 normalizes the numeric types the driver may decode _id into.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
