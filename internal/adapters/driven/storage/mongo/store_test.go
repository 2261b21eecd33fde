package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

func samplePassages() []domain.Passage {
	return []domain.Passage{
		{
			ID: "p1", DocumentID: "d1", Content: "A matrix is a grid of numbers.", Position: 0,
			Metadata: domain.Metadata{CourseTitle: "Algebra 101", FileName: "w1.pdf", FileType: "pdf",
				UsefulLinks: []string{"https://algebra.example"}},
		},
		{
			ID: "p2", DocumentID: "d1", Content: "Determinants of square matrices.", Position: 1,
			Metadata: domain.Metadata{CourseTitle: "Algebra 101", FileName: "w1.pdf", FileType: "pdf"},
		},
	}
}

func TestToDocuments(t *testing.T) {
	docs := toDocuments(samplePassages(), "batch-1", 41)
	require.Len(t, docs, 2)

	first := docs[0].(passageDocument)
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, int64(41), first.Seq)
	assert.Equal(t, "batch-1", first.BatchID)
	assert.Equal(t, "Algebra 101", first.CourseTitle)
	assert.Equal(t, []string{"https://algebra.example"}, first.UsefulLinks)

	second := docs[1].(passageDocument)
	assert.Equal(t, int64(42), second.Seq)
	assert.NotNil(t, second.UsefulLinks)
}

func TestFromDocuments_RoundTrip(t *testing.T) {
	in := samplePassages()
	raw := toDocuments(in, "b", 1)
	docs := make([]passageDocument, len(raw))
	for i, d := range raw {
		docs[i] = d.(passageDocument)
	}

	out := fromDocuments(docs)
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, []string{}, out[1].Metadata.UsefulLinks)
}

func TestPassageDocument_BSONFieldNames(t *testing.T) {
	raw, err := bson.Marshal(passageDocument{ID: "p1", CourseTitle: "Algebra 101", Seq: 3})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "p1", m["_id"])
	assert.Equal(t, "Algebra 101", m["course_title"])
	assert.Equal(t, int64(3), m["seq"])
}

func TestSearchString(t *testing.T) {
	assert.Equal(t, "matrix determinant", searchString("What is the matrix determinant?"))
	assert.Empty(t, searchString("what is the"))
}

func TestTextFilter(t *testing.T) {
	f := textFilter("matrix", nil)
	assert.Equal(t, bson.M{"$search": "matrix"}, f["$text"])
	assert.NotContains(t, f, "course_title")

	f = textFilter("matrix", domain.NewCourseFilter("Algebra 101"))
	assert.Equal(t, "Algebra 101", f["course_title"])
}

func TestSortedUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedUnique([]string{"c", "a", "b", "a", "c"}))
	assert.Empty(t, sortedUnique([]string{}))
}

// Integration test - only runs when LECTERN_TEST_MONGO_URI points at a server.
func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("LECTERN_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LECTERN_TEST_MONGO_URI not set, skipping mongo integration test")
	}
	ctx := context.Background()

	store, err := NewStore(ctx, uri, "lectern_test_"+bson.NewObjectID().Hex())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.passages.Database().Drop(context.Background())
		_ = store.Close()
	})

	require.NoError(t, store.Write(ctx, samplePassages()))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p1", all[0].ID)

	got, err := store.QueryByRelevance(ctx, "matrix grid", domain.NewCourseFilter("Algebra 101"), 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "p1", got[0].ID)

	courses, err := store.DistinctCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra 101"}, courses)
}

func TestNewStore_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping connection timeout test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	_, err := NewStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100", "lectern")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
