package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jobportal-labs/ragchat/internal/db"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/filter"
)

// metadataPrefix scopes filter fields under the document metadata namespace.
const metadataPrefix = "metadata."

// SearchVector runs an approximate nearest-neighbor search via the
// $vectorSearch aggregation stage.
func (s *Store) SearchVector(ctx context.Context, q *db.VectorQuery) (*db.SearchResult, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if q.Index == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Path == "" {
		return nil, fmt.Errorf("vector path is required")
	}
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.NumCandidates < q.Limit {
		return nil, fmt.Errorf("numCandidates must be at least limit")
	}

	cur, err := s.db.Collection(q.Collection).Aggregate(ctx, buildVectorPipeline(q))
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	var rows []searchRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	entries := make([]db.SearchEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, db.SearchEntry{
			Text:     row.Text,
			Metadata: normalizeMetadata(row.Metadata),
			Score:    row.Score,
		})
	}

	return &db.SearchResult{Entries: entries}, nil
}

type searchRow struct {
	Text     string  `bson:"text"`
	Metadata bson.M  `bson:"metadata"`
	Score    float64 `bson:"score"`
}

// buildVectorPipeline assembles the $vectorSearch + $project pipeline.
// The filter clause is attached only when conditions exist; _id is
// projected away and the score comes from the vectorSearchScore meta.
func buildVectorPipeline(q *db.VectorQuery) mongo.Pipeline {
	stage := bson.D{
		{Key: "index", Value: q.Index},
		{Key: "path", Value: q.Path},
		{Key: "queryVector", Value: q.Vector},
		{Key: "numCandidates", Value: q.NumCandidates},
		{Key: "limit", Value: q.Limit},
	}
	if !q.Filters.IsEmpty() {
		stage = append(stage, bson.E{Key: "filter", Value: buildFilter(q.Filters)})
	}

	return mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: stage}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "text", Value: 1},
			{Key: "metadata", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}

// buildFilter translates a filter conjunction into native predicates.
// Each field lands under the metadata namespace; multiple fields combine
// by implicit AND.
func buildFilter(f filter.Filter) bson.M {
	m := bson.M{}
	for _, c := range f.Conditions() {
		key := metadataPrefix + c.Field()
		switch {
		case c.IsIdentifier():
			// identifier format is validated at parse time
			oid, _ := bson.ObjectIDFromHex(c.Identifier())
			m[key] = oid
		case c.IsRange():
			m[key] = buildRange(*c.Range())
		default:
			m[key] = c.Equals()
		}
	}
	return m
}

func buildRange(r filter.Range) bson.M {
	b := bson.M{}
	if v := r.GT(); v != nil {
		b["$gt"] = *v
	}
	if v := r.GTE(); v != nil {
		b["$gte"] = *v
	}
	if v := r.LT(); v != nil {
		b["$lt"] = *v
	}
	if v := r.LTE(); v != nil {
		b["$lte"] = *v
	}
	return b
}

// normalizeMetadata converts BSON-typed values into JSON-friendly ones:
// ObjectIDs become hex strings, datetimes become UTC time.Time.
func normalizeMetadata(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.ObjectID:
		return t.Hex()
	case bson.DateTime:
		return t.Time().UTC()
	case bson.M:
		return normalizeMetadata(t)
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
