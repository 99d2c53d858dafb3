package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ExportStore exposes the read surface the snapshot engine consumes:
// enumerate collections, count documents, and read every document of a
// collection. It never mutates the database.
type ExportStore struct {
	db *mongo.Database
}

func NewExportStore(db *mongo.Database) *ExportStore {
	return &ExportStore{db: db}
}

func (s *ExportStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

func (s *ExportStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return count, nil
}

func (s *ExportStore) ReadAll(ctx context.Context, collection string) ([]map[string]any, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	docs := make([]map[string]any, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		docs = append(docs, map[string]any(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return docs, nil
}
