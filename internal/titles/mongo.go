package titles

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore reads category records from a MongoDB collection. The client is
// created lazily on first use and reused for the process lifetime; a failed
// initialization is cached and never retried per-call. With an empty URI every
// lookup returns ErrNotConfigured without attempting any I/O.
type MongoStore struct {
	uri        string
	database   string
	collection string

	once    sync.Once
	client  *mongo.Client
	initErr error
}

// NewMongoStore creates a store for the given URI, database and collection.
// No connection is made until the first lookup.
func NewMongoStore(uri, database, collection string) *MongoStore {
	return &MongoStore{uri: uri, database: database, collection: collection}
}

// FindCategory returns the record whose category field equals category.
func (s *MongoStore) FindCategory(ctx context.Context, category string) (*CategoryDoc, error) {
	if s.uri == "" {
		return nil, ErrNotConfigured
	}
	s.once.Do(func() {
		s.client, s.initErr = mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	})
	if s.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, s.initErr)
	}

	res := s.client.Database(s.database).Collection(s.collection).
		FindOne(ctx, bson.M{"category": category})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var doc CategoryDoc
	if err := res.Decode(&doc); err != nil {
		// A record whose locale_title is not an array of documents fails to
		// decode; that shape is tolerated as "no localization available".
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &doc, nil
}

// Close disconnects the client if one was created.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
