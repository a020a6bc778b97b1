package opportunity

import (
	"context"
	"errors"

	"go-ghlsync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OpportunityRepository interface {
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
	InsertMany(ctx context.Context, docs []Opportunity) (int, error)
	Replace(ctx context.Context, id string, doc Opportunity) error
	List(ctx context.Context, limit, offset int64) ([]Opportunity, error)
	Count(ctx context.Context) (int64, error)
}

type OpportunityRepositoryImpl struct {
	collection *mongo.Collection
}

func NewOpportunityRepository(db *database.MongodbDB) OpportunityRepository {
	return &OpportunityRepositoryImpl{
		collection: db.DB.Collection("opportunities"),
	}
}

// ExistingIDs resolves which of the candidate ids are already stored,
// with a single $in query per batch.
func (r *OpportunityRepositoryImpl) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(ids) == 0 {
		return existing, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		existing[row.ID] = struct{}{}
	}
	return existing, nil
}

// InsertMany bulk-inserts new documents, silently skipping duplicate
// keys. Returns the number actually inserted.
func (r *OpportunityRepositoryImpl) InsertMany(ctx context.Context, docs []Opportunity) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	payload := make([]interface{}, len(docs))
	for i, doc := range docs {
		payload[i] = doc
	}

	res, err := r.collection.InsertMany(ctx, payload, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil && onlyDuplicateKeys(err) {
		err = nil
	}
	return inserted, err
}

// Replace performs a full-field overwrite of the stored document.
func (r *OpportunityRepositoryImpl) Replace(ctx context.Context, id string, doc Opportunity) error {
	doc.ID = id
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	return err
}

func (r *OpportunityRepositoryImpl) List(ctx context.Context, limit, offset int64) ([]Opportunity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opportunities []Opportunity
	if err = cursor.All(ctx, &opportunities); err != nil {
		return nil, err
	}
	return opportunities, nil
}

func (r *OpportunityRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// onlyDuplicateKeys reports whether every error in a bulk write was a
// duplicate-key conflict.
func onlyDuplicateKeys(err error) bool {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return false
	}
	if bwe.WriteConcernError != nil {
		return false
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != 11000 {
			return false
		}
	}
	return len(bwe.WriteErrors) > 0
}
