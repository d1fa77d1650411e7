package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theray/database/repository"
	"theray/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a provider repository on the "providers" collection.
func NewMongoProviderRepo(db *mongo.Database) (*MongoProviderRepo, error) {
	r := &MongoProviderRepo{coll: db.Collection("providers")}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"id": id}, "id "+id)
}

func (r *MongoProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"userId": userID}, "userId "+userID)
}

func (r *MongoProviderRepo) findOne(ctx context.Context, filter bson.M, desc string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with %s: %w", desc, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) IncrementTotalSessions(ctx context.Context, id string, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	update := bson.M{
		"$inc": bson.M{"totalSessions": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment sessions for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
