// Package mongo provides a MongoDB-backed implementation of driven.PassageStore.
//
// Passages are stored one per document in the "passages" collection with a
// text index on content. A counters collection hands out monotonically
// increasing sequence numbers so ties in text score resolve to insertion
// order, matching the other stores.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/logger"
	"github.com/custodia-labs/lectern/internal/ranking"
)

// Ensure Store implements the interfaces.
var (
	_ driven.PassageStore = (*Store)(nil)
	_ driven.CourseLister = (*Store)(nil)
)

const (
	passagesCollection = "passages"
	countersCollection = "counters"
	passageCounterID   = "passages"

	connectTimeout = 10 * time.Second
)

// passageDocument is the stored shape of a passage.
type passageDocument struct {
	ID          string   `bson:"_id"`
	Seq         int64    `bson:"seq"`
	BatchID     string   `bson:"batch_id"`
	DocumentID  string   `bson:"document_id"`
	Position    int      `bson:"position"`
	Content     string   `bson:"content"`
	CourseTitle string   `bson:"course_title"`
	FileName    string   `bson:"file_name"`
	FileType    string   `bson:"file_type"`
	UsefulLinks []string `bson:"useful_links"`
}

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

// Store is a MongoDB passage store.
type Store struct {
	client   *mongo.Client
	passages *mongo.Collection
	counters *mongo.Collection
}

// NewStore connects to uri, verifies the server is reachable and ensures
// the indexes exist.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to mongo: %w", domain.ErrStoreUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: pinging mongo: %w", domain.ErrStoreUnavailable, err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		passages: db.Collection(passagesCollection),
		counters: db.Collection(countersCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Debug("mongo store ready: database=%s", database)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.passages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "content", Value: "text"}}},
		{Keys: bson.D{{Key: "course_title", Value: 1}}},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "batch_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: creating indexes: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Write inserts passages as one batch. If the insert fails partway the
// documents already written for the batch are removed again.
func (s *Store) Write(ctx context.Context, passages []domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	last, err := s.reserveSeq(ctx, int64(len(passages)))
	if err != nil {
		return err
	}

	batchID := uuid.New().String()
	docs := toDocuments(passages, batchID, last-int64(len(passages))+1)

	if _, err := s.passages.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if _, cleanupErr := s.passages.DeleteMany(context.WithoutCancel(ctx), bson.M{"batch_id": batchID}); cleanupErr != nil {
			logger.Error("mongo: rolling back batch %s failed: %v", batchID, cleanupErr)
		}
		return fmt.Errorf("%w: inserting passages: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// reserveSeq advances the passage counter by n and returns its new value.
func (s *Store) reserveSeq(ctx context.Context, n int64) (int64, error) {
	var counter counterDocument
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": passageCounterID},
		bson.M{"$inc": bson.M{"value": n}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("%w: reserving sequence: %w", domain.ErrStoreUnavailable, err)
	}
	return counter.Value, nil
}

// QueryByRelevance ranks passages by text score, then insertion order.
func (s *Store) QueryByRelevance(
	ctx context.Context, question string, filter *domain.CourseFilter, topK int,
) ([]domain.Passage, error) {
	search := searchString(question)
	if search == "" || topK <= 0 {
		return nil, nil
	}

	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}, {Key: "seq", Value: 1}}).
		SetLimit(int64(topK))

	cur, err := s.passages.Find(ctx, textFilter(search, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: querying passages: %w", domain.ErrStoreUnavailable, err)
	}
	return decodeAll(ctx, cur)
}

// ListAll returns every passage in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]domain.Passage, error) {
	cur, err := s.passages.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: listing passages: %w", domain.ErrStoreUnavailable, err)
	}
	return decodeAll(ctx, cur)
}

// DistinctCourses returns the sorted set of course titles.
func (s *Store) DistinctCourses(ctx context.Context) ([]string, error) {
	res := s.passages.Distinct(ctx, "course_title", bson.D{})
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing courses: %w", domain.ErrStoreUnavailable, err)
	}
	courses := []string{}
	if err := res.Decode(&courses); err != nil {
		return nil, fmt.Errorf("decoding courses: %w", err)
	}
	return sortedUnique(courses), nil
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]domain.Passage, error) {
	var docs []passageDocument
	if err := cur.All(ctx, &docs); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading cursor: %w", domain.ErrStoreUnavailable, err)
	}
	return fromDocuments(docs), nil
}

// searchString reduces the question to its searchable terms. $text ORs
// space-separated terms.
func searchString(question string) string {
	return strings.Join(ranking.Tokenize(question), " ")
}

func textFilter(search string, filter *domain.CourseFilter) bson.M {
	f := bson.M{"$text": bson.M{"$search": search}}
	if filter != nil {
		f["course_title"] = filter.CourseTitle
	}
	return f
}

func toDocuments(passages []domain.Passage, batchID string, firstSeq int64) []any {
	docs := make([]any, len(passages))
	for i, p := range passages {
		links := p.Metadata.UsefulLinks
		if links == nil {
			links = []string{}
		}
		docs[i] = passageDocument{
			ID:          p.ID,
			Seq:         firstSeq + int64(i),
			BatchID:     batchID,
			DocumentID:  p.DocumentID,
			Position:    p.Position,
			Content:     p.Content,
			CourseTitle: p.Metadata.CourseTitle,
			FileName:    p.Metadata.FileName,
			FileType:    p.Metadata.FileType,
			UsefulLinks: links,
		}
	}
	return docs
}

func fromDocuments(docs []passageDocument) []domain.Passage {
	passages := make([]domain.Passage, len(docs))
	for i, d := range docs {
		links := d.UsefulLinks
		if links == nil {
			links = []string{}
		}
		passages[i] = domain.Passage{
			ID:         d.ID,
			DocumentID: d.DocumentID,
			Content:    d.Content,
			Position:   d.Position,
			Metadata: domain.Metadata{
				CourseTitle: d.CourseTitle,
				FileName:    d.FileName,
				FileType:    d.FileType,
				UsefulLinks: links,
			},
		}
	}
	return passages
}
