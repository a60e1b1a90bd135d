package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/routeworks/wayfind/pkg/worldmap"
)

const mapCollection = "worldmaps"

// MongoStore persists world maps in MongoDB, one document per named map.
// The map's bson tags define the document shape, so documents remain
// readable and queryable with ordinary Mongo tooling.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures a
// unique index on the map name.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(mapCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save upserts the map document keyed by name.
func (s *MongoStore) Save(ctx context.Context, m worldmap.Map) error {
	if m.Name == "" {
		return ErrUnnamedMap
	}
	if err := m.Validate(); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": m.Name},
		m,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save map %s: %w", m.Name, err)
	}
	return nil
}

// Load retrieves a map by name.
func (s *MongoStore) Load(ctx context.Context, name string) (worldmap.Map, error) {
	var m worldmap.Map
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return worldmap.Map{}, ErrMapNotFound
	}
	if err != nil {
		return worldmap.Map{}, fmt.Errorf("load map %s: %w", name, err)
	}
	return m, nil
}

// List returns the names of all stored maps, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.D{},
		options.Find().
			SetProjection(bson.M{"name": 1}).
			SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode map name: %w", err)
		}
		names = append(names, doc.Name)
	}
	return names, cur.Err()
}

// Delete removes a map by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete map %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrMapNotFound
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
