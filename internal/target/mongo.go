package target

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoOperator implements Operator using the MongoDB driver.
type MongoOperator struct {
	client   *mongo.Client
	database string
}

// NewMongoOperator connects to the given MongoDB instance and verifies the
// connection with a ping.
func NewMongoOperator(ctx context.Context, connectionString, database string) (*MongoOperator, error) {
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	return &MongoOperator{
		client:   client,
		database: database,
	}, nil
}

// CreateIndex creates a single index on a collection.
func (m *MongoOperator) CreateIndex(ctx context.Context, collection string, index IndexDefinition) error {
	keys := bson.D{}
	for _, k := range index.Keys {
		keys = append(keys, bson.E{Key: k.Field, Value: k.Order})
	}

	opts := options.Index()
	if index.Name != "" {
		opts.SetName(index.Name)
	}
	if index.Unique {
		opts.SetUnique(true)
	}

	model := mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	}

	_, err := m.client.Database(m.database).Collection(collection).Indexes().CreateOne(ctx, model)
	if err != nil {
		return fmt.Errorf("creating index on %s: %w", collection, err)
	}
	return nil
}

// CreateIndexes creates multiple indexes across collections.
func (m *MongoOperator) CreateIndexes(ctx context.Context, indexes []CollectionIndex) error {
	for _, ci := range indexes {
		if err := m.CreateIndex(ctx, ci.Collection, ci.Index); err != nil {
			return err
		}
	}
	return nil
}

// ListIndexes returns the names of the indexes on a collection.
func (m *MongoOperator) ListIndexes(ctx context.Context, collection string) ([]string, error) {
	cursor, err := m.client.Database(m.database).Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing indexes on %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding index document: %w", err)
		}
		if name, ok := doc["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, cursor.Err()
}

// Close disconnects from MongoDB.
func (m *MongoOperator) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
