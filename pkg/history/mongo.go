package history

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snapkit/snapcard/pkg/errors"
)

// MongoStore persists history in a MongoDB collection, one document per
// snap. The cap is enforced after insert by deleting the oldest documents
// beyond MaxEntries.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the given database's
// "history" collection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("history"),
	}, nil
}

// mongoSnap is the document shape: the snap ID doubles as _id so inserts
// of the same snap cannot duplicate.
type mongoSnap struct {
	ID        string   `bson:"_id"`
	Text      string   `bson:"text"`
	Timestamp int64    `bson:"timestamp"` // unix milliseconds, the sort key
	Title     string   `bson:"title,omitempty"`
	Tags      []string `bson:"tags,omitempty"`
}

func toDoc(s Snap) mongoSnap {
	return mongoSnap{
		ID:        s.ID,
		Text:      s.Text,
		Timestamp: s.Timestamp.UnixMilli(),
		Title:     s.Title,
		Tags:      s.Tags,
	}
}

func fromDoc(d mongoSnap) Snap {
	return Snap{
		ID:        d.ID,
		Text:      d.Text,
		Timestamp: time.UnixMilli(d.Timestamp).UTC(),
		Title:     d.Title,
		Tags:      d.Tags,
	}
}

// Add inserts the snap and prunes everything past the cap.
func (m *MongoStore) Add(ctx context.Context, s Snap) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, err := m.coll.InsertOne(ctx, toDoc(s)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store snap")
	}
	return m.prune(ctx)
}

// prune deletes documents older than the newest MaxEntries.
func (m *MongoStore) prune(ctx context.Context) error {
	n, err := m.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "count history")
	}
	if n <= MaxEntries {
		return nil
	}

	// Find the timestamp of the oldest entry to keep.
	opts := options.FindOne().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(MaxEntries - 1)
	var cutoff mongoSnap
	if err := m.coll.FindOne(ctx, bson.D{}, opts).Decode(&cutoff); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "find prune cutoff")
	}

	filter := bson.D{
		{Key: "timestamp", Value: bson.D{{Key: "$lt", Value: cutoff.Timestamp}}},
	}
	if _, err := m.coll.DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "prune history")
	}
	return nil
}

// List returns the newest MaxEntries entries, newest first.
func (m *MongoStore) List(ctx context.Context) ([]Snap, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(MaxEntries)
	cur, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list history")
	}
	defer cur.Close(ctx)

	var docs []mongoSnap
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list history")
	}

	snaps := make([]Snap, 0, len(docs))
	for _, d := range docs {
		snaps = append(snaps, fromDoc(d))
	}
	return snaps, nil
}

// Get returns the entry with the given ID.
func (m *MongoStore) Get(ctx context.Context, id string) (Snap, error) {
	var d mongoSnap
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return Snap{}, notFound(id)
	}
	if err != nil {
		return Snap{}, errors.Wrap(errors.ErrCodeStore, err, "get snap")
	}
	return fromDoc(d), nil
}

// Delete removes the entry with the given ID.
func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete snap")
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
