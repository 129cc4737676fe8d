package authorityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"govconnect/models"
	"govconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuthorityRepo implements AuthorityRepository using MongoDB.
type MongoAuthorityRepo struct {
	coll *mongo.Collection
}

// NewMongoAuthorityRepo creates a new instance of AuthorityRepository using MongoDB.
func NewMongoAuthorityRepo(db *mongo.Database) AuthorityRepository {
	return &MongoAuthorityRepo{coll: db.Collection("authorities")}
}

func (r *MongoAuthorityRepo) GetByID(ctx context.Context, id string) (*models.Authority, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var authority models.Authority
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&authority)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("authority %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authority with id %s: %w", id, err)
	}
	return &authority, nil
}

func (r *MongoAuthorityRepo) GetAll(ctx context.Context) ([]models.Authority, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoAuthorityRepo) GetByCategory(ctx context.Context, category string) ([]models.Authority, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *MongoAuthorityRepo) find(ctx context.Context, filter bson.M) ([]models.Authority, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve authorities: %w", err)
	}
	defer cursor.Close(ctx)

	authorities := []models.Authority{}
	for cursor.Next(ctx) {
		var a models.Authority
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode authority: %w", err)
		}
		authorities = append(authorities, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return authorities, nil
}

func (r *MongoAuthorityRepo) Upsert(ctx context.Context, authority *models.Authority) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": authority.ID}, authority, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert authority %s: %w", authority.ID, err)
	}
	return nil
}

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoAuthorityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	categoryIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, categoryIdx}); err != nil {
		return fmt.Errorf("failed to create authority indexes: %w", err)
	}
	return nil
}
