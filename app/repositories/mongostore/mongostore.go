// Package mongostore implements the repositories on MongoDB. Users, products
// and orders each live in their own collection keyed by ObjectID.
package mongostore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/app/repositories"
	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"
)

// Store implements repositories.Store on a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps client and uses database dbName. Call EnsureIndexes once before
// serving traffic.
func New(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

// EnsureIndexes creates the unique username index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	return errors.Wrap(err, "mongostore: ensure indexes")
}

// Drop removes every collection. Used by tests and the fresh-seed command.
func (s *Store) Drop(ctx context.Context) error {
	return errors.Wrap(s.db.Drop(ctx), "mongostore: drop")
}

func (s *Store) Users() repositories.UserRepository {
	return &users{col: s.db.Collection(usersCollection)}
}

func (s *Store) Products() repositories.ProductRepository {
	return &products{col: s.db.Collection(productsCollection)}
}

func (s *Store) Orders() repositories.OrderRepository {
	return &orders{col: s.db.Collection(ordersCollection)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func observe(op string) func() {
	start := time.Now()
	return func() { metrics.ObserveDBQuery("mongo", op, start) }
}

func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repositories.ErrDuplicate
	}
	return errors.Wrap(err, "mongostore: "+op)
}

var insertionOrder = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

func byID(id models.ID) bson.M { return bson.M{"_id": id} }

func stamp(id *models.ID, created, updated *time.Time) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if id.IsZero() {
		*id = models.NewID()
	}
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M, op string) (T, error) {
	var out T
	err := col.FindOne(ctx, filter).Decode(&out)
	return out, translate(err, op)
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, op string) ([]T, error) {
	cur, err := col.Find(ctx, filter, insertionOrder)
	if err != nil {
		return nil, translate(err, op)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, op)
	}
	return out, nil
}

func replace(ctx context.Context, col *mongo.Collection, id models.ID, doc any, op string) error {
	res, err := col.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return translate(err, op)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func remove(ctx context.Context, col *mongo.Collection, id models.ID, op string) error {
	res, err := col.DeleteOne(ctx, byID(id))
	if err != nil {
		return translate(err, op)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
