// Package mongorepo persists user records in the application's MongoDB
// database, alongside the sessions collection.
package mongorepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/jrsteele09/go-session-server/internal/errors"
	"github.com/jrsteele09/go-session-server/users"
)

const collectionName = "users"

// Repo is a MongoDB-backed implementation of users.Repo.
type Repo struct {
	coll *mongo.Collection
}

var _ users.Repo = (*Repo)(nil)

// New resolves the users collection on db and enforces username uniqueness
// before returning.
func New(ctx context.Context, db *mongo.Database) (*Repo, error) {
	coll := db.Collection(collectionName)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "mongorepo: ensure username index")
	}
	return &Repo{coll: coll}, nil
}

// Upsert creates or fully replaces a user record, keyed by ID.
func (r *Repo) Upsert(ctx context.Context, user *users.User) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Wrapf(err, "mongorepo: username %q already taken", user.Username)
		}
		return apperrors.Wrapf(err, "mongorepo: upsert user")
	}
	return nil
}

// Delete removes a user by username; a missing user is not an error.
func (r *Repo) Delete(ctx context.Context, username string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"username": username}); err != nil {
		return apperrors.Wrapf(err, "mongorepo: delete user")
	}
	return nil
}

// GetByID retrieves a user by unique identifier.
func (r *Repo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername retrieves a user by login name.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// SetLastLogin stamps the user's last login time.
func (r *Repo) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return apperrors.Wrapf(err, "mongorepo: set last login")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *Repo) findOne(ctx context.Context, filter bson.M) (*users.User, error) {
	var user users.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if apperrors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrapf(err, "mongorepo: find user")
	}
	return &user, nil
}
