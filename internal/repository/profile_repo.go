package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"careercompass/internal/model"
)

// ProfileRepo persists completed-session profiles, keyed by session
// id. Save is an upsert so an explicit recomputation overwrites with
// the identical value instead of failing.
type ProfileRepo interface {
	Save(ctx context.Context, profile *model.Profile) error
	GetBySessionID(ctx context.Context, sessionID string) (*model.Profile, error)
	GetByParticipant(ctx context.Context, participantID string) ([]*model.Profile, error)
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a profile repository on the given database.
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("profiles"),
	}
}

func (r *profileRepo) Save(ctx context.Context, profile *model.Profile) error {
	filter := bson.M{"_id": profile.SessionID}
	_, err := r.collection.ReplaceOne(ctx, filter, profile, options.Replace().SetUpsert(true))
	return err
}

func (r *profileRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetByParticipant(ctx context.Context, participantID string) ([]*model.Profile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"participantId": participantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*model.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
