package store

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend keeps each collection blob as a single document in a "kv"
// collection, keyed by _id. Useful when several instances should share one
// store.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type kvDocument struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

func OpenMongo(uri, database string) (*MongoBackend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if database == "" {
		database = "octascan"
	}
	log.Println("[store] Successfully connected to MongoDB!")
	return &MongoBackend{
		client: client,
		coll:   client.Database(database).Collection("kv"),
	}, nil
}

func (b *MongoBackend) Get(key string) ([]byte, error) {
	var doc kvDocument
	err := b.coll.FindOne(context.TODO(), bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (b *MongoBackend) Put(key string, value []byte) error {
	_, err := b.coll.ReplaceOne(context.TODO(), bson.M{"_id": key},
		kvDocument{ID: key, Data: value}, options.Replace().SetUpsert(true))
	return err
}

func (b *MongoBackend) Delete(key string) error {
	_, err := b.coll.DeleteOne(context.TODO(), bson.M{"_id": key})
	return err
}

func (b *MongoBackend) Close() error {
	return b.client.Disconnect(context.TODO())
}
