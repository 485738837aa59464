package persistence

import (
	"context"
	"errors"
	"time"

	"creedava-api/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const integrationsCollection = "integrations"

// LinkedInTokenRepository stores one linkedin-config document per organization
// in the shared integrations collection, discriminated by the type field.
type LinkedInTokenRepository struct {
	collection *mongo.Collection
}

func NewLinkedInTokenRepository(client *mongo.Client, database string) *LinkedInTokenRepository {
	if client == nil {
		return &LinkedInTokenRepository{}
	}
	return &LinkedInTokenRepository{collection: client.Database(database).Collection(integrationsCollection)}
}

// Upsert replaces the organization's record in full, creating it when absent.
func (r *LinkedInTokenRepository) Upsert(ctx context.Context, t *model.LinkedInToken) error {
	if r.collection == nil {
		return errors.New("token store not configured")
	}
	t.Type = model.TokenDocType
	t.UpdatedAt = time.Now().UTC()
	filter := bson.D{{Key: "_id", Value: t.OrganizationID}, {Key: "type", Value: model.TokenDocType}}
	_, err := r.collection.ReplaceOne(ctx, filter, t, options.Replace().SetUpsert(true))
	return err
}

// Get returns the stored token or (nil, nil) when the organization has never connected.
func (r *LinkedInTokenRepository) Get(ctx context.Context, organizationID string) (*model.LinkedInToken, error) {
	if r.collection == nil {
		return nil, errors.New("token store not configured")
	}
	filter := bson.D{{Key: "_id", Value: organizationID}, {Key: "type", Value: model.TokenDocType}}
	var t model.LinkedInToken
	if err := r.collection.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// ReplaceIf performs an optimistic replace keyed on the record's stored
// updatedAt. Concurrent refreshes race on this; the loser observes false
// and should re-read the winner's record.
func (r *LinkedInTokenRepository) ReplaceIf(ctx context.Context, t *model.LinkedInToken, prevUpdatedAt time.Time) (bool, error) {
	if r.collection == nil {
		return false, errors.New("token store not configured")
	}
	t.Type = model.TokenDocType
	t.UpdatedAt = time.Now().UTC()
	filter := bson.D{
		{Key: "_id", Value: t.OrganizationID},
		{Key: "type", Value: model.TokenDocType},
		{Key: "updatedAt", Value: prevUpdatedAt},
	}
	res, err := r.collection.ReplaceOne(ctx, filter, t)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
