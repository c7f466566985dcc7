package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jobportal-labs/ragchat/internal/db"
)

// FindAll reads every document of a collection into out, which must be a
// pointer to a slice.
func (s *Store) FindAll(ctx context.Context, collection string, out any) error {
	if collection == "" {
		return fmt.Errorf("collection is required")
	}

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	if err := cur.All(ctx, out); err != nil {
		return &db.Error{Op: db.OpFind, Err: err}
	}
	return nil
}

// Upsert sets fields on the document matching key, inserting it when
// absent.
func (s *Store) Upsert(ctx context.Context, collection string, key, set bson.M) error {
	if collection == "" {
		return fmt.Errorf("collection is required")
	}
	if len(key) == 0 {
		return fmt.Errorf("upsert key is required")
	}

	_, err := s.db.Collection(collection).UpdateOne(ctx, key,
		bson.M{"$set": set}, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return &db.Error{Op: db.OpUpdateOne, Err: err}
	}
	return nil
}
