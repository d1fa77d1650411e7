package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theray/database/repository"
	"theray/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
// OperationTimeout bounds a single-document read or write.
const OperationTimeout = 5 * time.Second

type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a session repository on the "sessions" collection
// of db and makes sure its indexes exist.
func NewMongoSessionRepo(db *mongo.Database) (*MongoSessionRepo, error) {
	r := &MongoSessionRepo{coll: db.Collection("sessions")}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, OperationTimeout)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session %s: %w", session.ID, err)
	}
	return nil
}

func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, OperationTimeout)
	defer cancel()
	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session with id %s: %w", id, err)
	}
	return &session, nil
}

func (r *MongoSessionRepo) UpdateIfVersion(ctx context.Context, session *models.Session, expectedVersion int) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, OperationTimeout)
	defer cancel()

	filter := bson.M{"id": session.ID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{
			"status":        session.Status,
			"clientNotes":   session.ClientNotes,
			"providerNotes": session.ProviderNotes,
			"meetingLink":   session.MeetingLink,
			"updatedAt":     time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Session
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the session vanished or someone else committed first.
		n, countErr := r.coll.CountDocuments(ctx, bson.M{"id": session.ID})
		if countErr != nil {
			return nil, fmt.Errorf("failed to check session %s: %w", session.ID, countErr)
		}
		if n == 0 {
			return nil, repository.ErrNotFound
		}
		return nil, repository.ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update session %s: %w", session.ID, err)
	}
	return &updated, nil
}
