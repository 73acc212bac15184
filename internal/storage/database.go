package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IshaanNene/ReviewScope/internal/types"
)

// MongoSink archives exported files in a MongoDB collection.
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
	mu         sync.Mutex
	count      int
	logger     *slog.Logger
}

// NewMongoSink connects to MongoDB and returns an archive sink.
func NewMongoSink(uri, database, collection string, logger *slog.Logger) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoSink{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_sink"),
	}, nil
}

func (s *MongoSink) Name() string { return "mongodb" }

func (s *MongoSink) Deliver(ctx context.Context, blob *Blob) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := bson.M{
		"filename":     blob.Filename,
		"content_type": blob.ContentType,
		"data":         string(blob.Bytes()),
		"size":         blob.Size(),
		"created_at":   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", &types.ExportError{Sink: s.Name(), Err: fmt.Errorf("mongodb insert: %w", err)}
	}

	id := fmt.Sprint(res.InsertedID)
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	s.count++
	s.logger.Debug("export archived in mongodb", "filename", blob.Filename, "id", id, "total", s.count)
	return fmt.Sprintf("mongodb:%s/%s", s.collection.Name(), id), nil
}

func (s *MongoSink) Close() error {
	s.logger.Info("mongodb sink closing", "total_exports", s.count)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// --- Multi-Sink Fan-Out ---

// MultiSink delivers each blob to several sinks.
type MultiSink struct {
	sinks  []Sink
	logger *slog.Logger

	// primary means only sinks[0] can fail a delivery; the rest are archives.
	primary bool
}

// NewMultiSink creates a sink that fans out to multiple sinks.
func NewMultiSink(sinks []Sink, logger *slog.Logger) *MultiSink {
	return &MultiSink{
		sinks:  sinks,
		logger: logger.With("component", "multi_sink"),
	}
}

// NewArchivingSink delivers to primary and then copies each blob to the
// archives. Archive failures are logged and never fail the delivery.
func NewArchivingSink(primary Sink, archives []Sink, logger *slog.Logger) *MultiSink {
	s := NewMultiSink(append([]Sink{primary}, archives...), logger)
	s.primary = true
	return s
}

func (s *MultiSink) Name() string { return "multi" }

// Deliver returns the first sink's location and the first error seen.
// In primary mode a failed primary stops the delivery and archive errors
// are dropped.
func (s *MultiSink) Deliver(ctx context.Context, blob *Blob) (string, error) {
	var first string
	var firstErr error
	for i, sink := range s.sinks {
		loc, err := sink.Deliver(ctx, blob)
		if err != nil {
			s.logger.Error("sink delivery failed", "sink", sink.Name(), "error", err)
			if s.primary {
				if i == 0 {
					return "", err
				}
				continue
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if first == "" {
			first = loc
		}
	}
	return first, firstErr
}

func (s *MultiSink) Close() error {
	var firstErr error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
