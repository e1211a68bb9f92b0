// Package mongostore implements the session Store contract on top of a
// MongoDB collection: records uniquely keyed on sid, purged by a TTL index
// on their absolute ttl timestamp, written with single-document upserts.
//
// The store is constructed before its backing connection is ready: a single
// initialization task dials the connection and establishes the index
// guarantees, and every operation awaits that same task's outcome. Callers
// issuing operations early are queued on the shared outcome rather than
// triggering further connection attempts.
package mongostore

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/jrsteele09/go-session-server/internal/errors"
	"github.com/jrsteele09/go-session-server/sessions"
)

// Store is a MongoDB-backed session store. A single shared instance serves
// arbitrarily many concurrent callers; per-sid write atomicity is delegated
// to the backing store's single-document guarantees.
type Store struct {
	cfg Config
	log zerolog.Logger

	// ready is closed once initialization settles. coll, client and
	// initErr are written only before the close and read only after it.
	ready   chan struct{}
	coll    *mongo.Collection
	client  *mongo.Client // set when the store dialed the connection itself
	initErr error

	onConnect func(*mongo.Collection)
	onError   func(error)
}

var _ sessions.Store = (*Store)(nil)

// Option configures optional store behaviour.
type Option func(*Store)

// WithLogger overrides the package-level logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithOnConnect registers a hook invoked with the resolved collection once
// the connection and both index guarantees are in place.
func WithOnConnect(fn func(*mongo.Collection)) Option {
	return func(s *Store) { s.onConnect = fn }
}

// WithOnError registers a hook invoked if initialization fails. Failures
// are not retried; the caller owns reconstruction.
func WithOnError(fn func(error)) Option {
	return func(s *Store) { s.onError = fn }
}

// New validates the configuration and starts the connection and index-setup
// task. Validation failures are reported here, synchronously, before any
// network activity. Initialization runs at most once per store instance
// regardless of how many operations are pending on it.
func New(cfg Config, opts ...Option) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Store{
		cfg:   cfg.withDefaults(),
		log:   log.Logger,
		ready: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.initialize()
	return s, nil
}

func (s *Store) initialize() {
	defer close(s.ready)

	ctx := context.Background()

	coll, client, err := s.resolveCollection(ctx)
	if err != nil {
		s.fail(apperrors.Classify(apperrors.ErrConnection, err, "mongostore: connect"))
		return
	}

	if err := ensureIndexes(ctx, coll); err != nil {
		if client != nil {
			_ = client.Disconnect(ctx)
		}
		s.fail(apperrors.Classify(apperrors.ErrIndexSetup, err, "mongostore: ensure indexes"))
		return
	}

	s.coll = coll
	s.client = client
	s.log.Info().
		Str("database", coll.Database().Name()).
		Str("collection", coll.Name()).
		Msg("session store connected")

	if s.onConnect != nil {
		s.onConnect(coll)
	}
}

func (s *Store) fail(err error) {
	s.initErr = err
	s.log.Err(err).Msg("session store initialization failed")
	if s.onError != nil {
		s.onError(err)
	}
}

// resolveCollection returns the target collection, plus the client when the
// store owns the connection. An existing Database handle skips the dial.
func (s *Store) resolveCollection(ctx context.Context) (*mongo.Collection, *mongo.Client, error) {
	if s.cfg.Database != nil {
		return s.cfg.Database.Collection(s.cfg.Collection), nil, nil
	}

	uri := s.cfg.URL
	if uri == "" {
		uri = s.cfg.buildURI()
	}

	clientOpts := []*options.ClientOptions{options.Client().ApplyURI(uri)}
	if s.cfg.ConnectOptions != nil {
		clientOpts = append(clientOpts, s.cfg.ConnectOptions)
	}

	client, err := mongo.Connect(ctx, clientOpts...)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return client.Database(s.cfg.databaseName()).Collection(s.cfg.Collection), client, nil
}

// ensureIndexes establishes the two structural guarantees the store relies
// on: expireAfterSeconds 0 makes mongod purge a document as soon as its ttl
// instant is in the past, and the unique sid index backs the upsert key.
func ensureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ttl", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "sid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// await blocks until initialization settles or ctx is done, then returns
// the shared outcome.
func (s *Store) await(ctx context.Context) (*mongo.Collection, error) {
	select {
	case <-s.ready:
		if s.initErr != nil {
			return nil, s.initErr
		}
		return s.coll, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready blocks until the store is connected and its indexes are in place,
// returning the initialization error if it failed.
func (s *Store) Ready(ctx context.Context) error {
	_, err := s.await(ctx)
	return err
}

// Collection exposes the resolved collection handle for collaborators that
// share the store's connection. It blocks like any other operation.
func (s *Store) Collection(ctx context.Context) (*mongo.Collection, error) {
	return s.await(ctx)
}

// Close disconnects a connection the store dialed itself. A Database handle
// supplied in the configuration stays open; its owner closes it.
func (s *Store) Close(ctx context.Context) error {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Get looks up the record whose sid matches exactly and returns its payload
// with the bookkeeping fields stripped. A missing session is (nil, nil).
func (s *Store) Get(ctx context.Context, sid string) (sessions.Payload, error) {
	coll, err := s.await(ctx)
	if err != nil {
		return nil, err
	}

	var rec record
	if err := coll.FindOne(ctx, bson.M{"sid": sid}).Decode(&rec); err != nil {
		if apperrors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperrors.Classify(apperrors.ErrStorage, err, "mongostore: get session")
	}
	return rec.payload(), nil
}

// Set clones the payload, stamps it with sid and an absolute expiry
// timestamp, and upserts the record keyed by sid: insert if absent, full
// replace if present, never a partial merge.
func (s *Store) Set(ctx context.Context, sid string, payload sessions.Payload, maxAge time.Duration) error {
	coll, err := s.await(ctx)
	if err != nil {
		return err
	}

	rec := newRecord(sid, payload, maxAge, time.Now())
	_, err = coll.ReplaceOne(ctx, bson.M{"sid": sid}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Should not occur under upsert semantics, but must be
			// surfaced rather than silently dropped.
			return apperrors.Classify(apperrors.ErrStorage, err, "mongostore: duplicate sid")
		}
		return apperrors.Classify(apperrors.ErrStorage, err, "mongostore: set session")
	}
	return nil
}

// Destroy removes the record for sid. Destroying a session that does not
// exist is not an error.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	coll, err := s.await(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"sid": sid}); err != nil {
		return apperrors.Classify(apperrors.ErrStorage, err, "mongostore: destroy session")
	}
	return nil
}
