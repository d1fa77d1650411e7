package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"theray/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoSessionRepo) FindActiveByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, OperationTimeout)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"status":     bson.M{"$ne": models.StatusCancelled},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions for provider %s: %w", providerID, err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) List(ctx context.Context, query models.SessionQuery) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: -1}}).
		SetSkip(query.Skip)
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}

	cursor, err := r.coll.Find(ctx, buildFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []models.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) Count(ctx context.Context, query models.SessionQuery) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, OperationTimeout)
	defer cancel()
	n, err := r.coll.CountDocuments(ctx, buildFilter(query))
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// buildFilter turns a scoped query into a Mongo filter. Paging is ignored.
func buildFilter(query models.SessionQuery) bson.M {
	filter := bson.M{}
	if query.ClientID != "" {
		filter["clientId"] = query.ClientID
	}
	if query.ProviderID != "" {
		filter["providerId"] = query.ProviderID
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.Date != nil {
		filter["date"] = *query.Date
	}
	return filter
}
