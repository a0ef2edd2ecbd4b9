package storage

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slotDocument is how a slot is kept in MongoDB
type slotDocument struct {
	Slot      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps slots in a MongoDB collection, one document per slot. There is no
// version check: concurrent writers to one slot overwrite each other.
type MongoStore struct {
	Collection *mongo.Collection
	Namespace  string
}

// NewMongoStore creates a MongoStore. namespace prefixes every slot so several
// storefronts can share one collection.
func NewMongoStore(client *mongo.Client, database, namespace string) *MongoStore {
	return &MongoStore{
		Collection: client.Database(database).Collection("cart_slots"),
		Namespace:  namespace,
	}
}

var _ KeyValueStore = (*MongoStore)(nil)

func (m *MongoStore) id(slot string) string {
	if m.Namespace == "" {
		return slot
	}
	return m.Namespace + ":" + slot
}

// Get reads a slot document
func (m *MongoStore) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc slotDocument
	err := m.Collection.FindOne(ctx, bson.M{"_id": m.id(slot)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "find slot %s", slot)
	}
	return []byte(doc.Data), true, nil
}

// Set upserts the slot document
func (m *MongoStore) Set(ctx context.Context, slot string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := slotDocument{Slot: m.id(slot), Data: string(data), UpdatedAt: time.Now().UTC()}
	_, err := m.Collection.ReplaceOne(ctx, bson.M{"_id": doc.Slot}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "save slot %s", slot)
	}
	return nil
}

// Delete removes the slot document; a missing slot succeeds
func (m *MongoStore) Delete(ctx context.Context, slot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.Collection.DeleteOne(ctx, bson.M{"_id": m.id(slot)}); err != nil {
		return errors.Wrapf(err, "delete slot %s", slot)
	}
	return nil
}
