// Package mongorepo persists the bot's user records in MongoDB. The store
// backs the admin broadcast and user-count operations; losing it costs
// history, not correctness of lookups.
package mongorepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

// Connect opens a monitored client with a bounded pool and verifies the
// server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Second).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

type userDoc struct {
	ID        int64  `bson:"_id"`
	Username  string `bson:"username,omitempty"`
	FirstName string `bson:"firstName,omitempty"`
	CreatedAt int64  `bson:"createdAt"`
}

func toDoc(user domain.User, now time.Time) userDoc {
	return userDoc{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		CreatedAt: now.UnixMilli(),
	}
}

func fromDoc(doc userDoc) domain.User {
	return domain.User{
		ID:        doc.ID,
		Username:  doc.Username,
		FirstName: doc.FirstName,
	}
}

// Save registers a user on first contact. The upsert with $setOnInsert makes
// concurrent first-contact races benign: whichever insert wins, the record
// ends up identical and nothing is overwritten afterwards.
func (r *UserRepository) Save(ctx context.Context, user domain.User) error {
	doc := toDoc(user, time.Now())
	_, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// ListIDs returns every registered user id, for broadcast fan-out.
func (r *UserRepository) ListIDs(ctx context.Context) ([]int64, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []int64
	for cursor.Next(ctx) {
		var doc struct {
			ID int64 `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}
