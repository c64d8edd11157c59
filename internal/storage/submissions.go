package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
)

// Submissions wraps the submissions collection with the typed queries the
// rest of the service uses.
type Submissions struct {
	coll *mongo.Collection
}

// NewSubmissions creates a Submissions store over the given collection.
func NewSubmissions(coll *mongo.Collection) *Submissions {
	return &Submissions{coll: coll}
}

// matchStage translates the shared predicate into its Mongo form. An
// all-inclusive filter becomes an empty document; excluding duplicates uses
// $ne so records missing the flag still match.
func matchStage(f domain.Filter) bson.M {
	if f.ExcludeDuplicates {
		return bson.M{"isDuplicate": bson.M{"$ne": true}}
	}
	return bson.M{}
}

// prependMatch prepends the predicate match stage to a pipeline unless the
// predicate matches everything.
func prependMatch(f domain.Filter, rest mongo.Pipeline) mongo.Pipeline {
	if !f.ExcludeDuplicates {
		return rest
	}
	pipeline := make(mongo.Pipeline, 0, len(rest)+1)
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchStage(f)}})
	return append(pipeline, rest...)
}

// nonEmptyGroupKey filters out null and empty-string group keys after a
// $group stage.
var nonEmptyGroupKey = bson.D{{Key: "$match", Value: bson.M{
	"_id": bson.M{"$nin": bson.A{nil, ""}},
}}}

// Ping verifies store connectivity.
func (s *Submissions) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// CountSubmissions counts records matching the predicate.
func (s *Submissions) CountSubmissions(ctx context.Context, f domain.Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, matchStage(f))
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

// AverageHeadphoneFreq computes the mean headphone-use rating across matching
// records. ok is false when no records matched.
func (s *Submissions) AverageHeadphoneFreq(ctx context.Context, f domain.Filter) (avg float64, ok bool, err error) {
	pipeline := prependMatch(f, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"avgValue": bson.M{"$avg": "$headphoneFreq"},
		}}},
	})

	var results []struct {
		AvgValue *float64 `bson:"avgValue"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return 0, false, fmt.Errorf("average headphoneFreq: %w", err)
	}
	if len(results) == 0 || results[0].AvgValue == nil {
		return 0, false, nil
	}
	return *results[0].AvgValue, true, nil
}

// FieldCounts groups matching records by a single-select field and counts
// each distinct value, excluding null and empty keys. Ordering is left to the
// caller.
func (s *Submissions) FieldCounts(ctx context.Context, f domain.Filter, field string) ([]domain.Bucket, error) {
	pipeline := prependMatch(f, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
		nonEmptyGroupKey,
	})

	var results []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("group by %s: %w", field, err)
	}

	buckets := make([]domain.Bucket, 0, len(results))
	for _, r := range results {
		buckets = append(buckets, domain.Bucket{Name: r.ID, Count: r.Count})
	}
	return buckets, nil
}

// ArrayFieldCounts unwinds a multi-select array field so each selected item
// contributes one count, then groups by item. Records with a missing or empty
// array contribute nothing.
func (s *Submissions) ArrayFieldCounts(ctx context.Context, f domain.Filter, field string) ([]domain.Bucket, error) {
	pipeline := prependMatch(f, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			field: bson.M{"$exists": true, "$ne": nil, "$not": bson.M{"$size": 0}},
		}}},
		bson.D{{Key: "$unwind", Value: "$" + field}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
		nonEmptyGroupKey,
	})

	var results []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("unwind %s: %w", field, err)
	}

	buckets := make([]domain.Bucket, 0, len(results))
	for _, r := range results {
		buckets = append(buckets, domain.Bucket{Name: r.ID, Count: r.Count})
	}
	return buckets, nil
}

// HeadphoneFreqCounts groups matching records by the numeric headphone-use
// rating, excluding records without one.
func (s *Submissions) HeadphoneFreqCounts(ctx context.Context, f domain.Filter) ([]domain.ValueBucket, error) {
	pipeline := prependMatch(f, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$headphoneFreq",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": nil}}}},
	})

	var results []struct {
		ID    int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("group by headphoneFreq: %w", err)
	}

	buckets := make([]domain.ValueBucket, 0, len(results))
	for _, r := range results {
		buckets = append(buckets, domain.ValueBucket{Value: r.ID, Count: r.Count})
	}
	return buckets, nil
}

// BotherLevelCounts groups matching records by bother label and carries the
// first observed decibel level of each group through as its sort key.
func (s *Submissions) BotherLevelCounts(ctx context.Context, f domain.Filter) ([]domain.LevelBucket, error) {
	pipeline := prependMatch(f, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$botherLabel",
			"level": bson.M{"$first": "$botherLevel"},
			"count": bson.M{"$sum": 1},
		}}},
		nonEmptyGroupKey,
	})

	var results []struct {
		ID    string `bson:"_id"`
		Level int    `bson:"level"`
		Count int64  `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("group by botherLabel: %w", err)
	}

	buckets := make([]domain.LevelBucket, 0, len(results))
	for _, r := range results {
		buckets = append(buckets, domain.LevelBucket{Label: r.ID, Level: r.Level, Count: r.Count})
	}
	return buckets, nil
}

// TopFeatureCounts groups matching records by their first-ranked feature.
// Only rank 0 counts; records without a ranking contribute nothing.
func (s *Submissions) TopFeatureCounts(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
	pipeline := prependMatch(f, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"featurePriorities": bson.M{"$exists": true, "$ne": nil, "$not": bson.M{"$size": 0}},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$first": "$featurePriorities"},
			"count": bson.M{"$sum": 1},
		}}},
		nonEmptyGroupKey,
	})

	var results []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("group by top feature: %w", err)
	}

	buckets := make([]domain.Bucket, 0, len(results))
	for _, r := range results {
		buckets = append(buckets, domain.Bucket{Name: r.ID, Count: r.Count})
	}
	return buckets, nil
}

// ListSummaries returns the list-view projection of matching submissions,
// newest first, capped at limit.
func (s *Submissions) ListSummaries(ctx context.Context, f domain.Filter, limit int) ([]domain.SubmissionSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "createdAt": 1, "isDuplicate": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, matchStage(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []domain.SubmissionSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode summaries: %w", err)
	}
	return summaries, nil
}

// GetSubmission looks up one submission by its hex id. The caller is expected
// to have validated the id format already.
func (s *Submissions) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parse submission id %q: %w", id, err)
	}

	var sub domain.Submission
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find submission %s: %w", id, err)
	}
	return &sub, nil
}

// InsertSubmission stores a new submission, assigning the server-side
// creation timestamp, and returns the assigned id.
func (s *Submissions) InsertSubmission(ctx context.Context, sub *domain.Submission) (string, error) {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now().UTC()

	if _, err := s.coll.InsertOne(ctx, sub); err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}
	return sub.ID.Hex(), nil
}

// aggregate runs a pipeline and decodes all results into out.
func (s *Submissions) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
