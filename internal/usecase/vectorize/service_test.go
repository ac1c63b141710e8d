package vectorize

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/textvec/internal/domain"
	"github.com/kailas-cloud/textvec/internal/domain/vectorspace"
)

// --- Mocks ---

type mockCache struct {
	data map[string][]byte
	gets int
	puts int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func keyString(k domain.ResultKey) string {
	return k.Operation + "|" + strings.Join(k.Params, ",") + "|" + strings.Join(k.Texts, "\x00")
}

func (m *mockCache) Get(_ context.Context, key domain.ResultKey, dst any) bool {
	m.gets++
	data, ok := m.data[keyString(key)]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (m *mockCache) Put(_ context.Context, key domain.ResultKey, v any) {
	m.puts++
	data, _ := json.Marshal(v)
	m.data[keyString(key)] = data
}

func intPtr(v int) *int { return &v }

var samples = []string{
	"Natural language processing helps computers understand human language.",
	"Machine learning algorithms learn from data.",
	"Deep learning uses neural networks with many layers.",
	"Python is a popular programming language for AI.",
	"FastAPI makes it easy to build web APIs.",
}

// --- Tests ---

func TestBagOfWords(t *testing.T) {
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen)
	res, err := svc.BagOfWords(context.Background(), Request{
		Texts:       []string{"cat dog", "dog dog bird"},
		MaxFeatures: intPtr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Shape != [2]int{2, 3} {
		t.Errorf("shape = %v, want [2 3]", res.Shape)
	}
	if !reflect.DeepEqual(res.Vocabulary, map[int]string{0: "dog", 1: "cat", 2: "bird"}) {
		t.Errorf("vocabulary = %v", res.Vocabulary)
	}
	if !reflect.DeepEqual(res.Matrix, [][]float64{{1, 1, 0}, {2, 0, 1}}) {
		t.Errorf("matrix = %v", res.Matrix)
	}
}

func TestTFIDF_DefaultMaxFeatures(t *testing.T) {
	svc := New(Limits{DefaultMaxFeatures: 4}, vectorspace.TieBreakLexical)
	res, err := svc.TFIDF(context.Background(), Request{Texts: samples})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Shape != [2]int{len(samples), 4} {
		t.Errorf("shape = %v, want [%d 4]", res.Shape, len(samples))
	}
	for i, row := range res.Matrix {
		var sq float64
		for _, v := range row {
			sq += v * v
		}
		if n := math.Sqrt(sq); n != 0 && math.Abs(n-1) > 1e-9 {
			t.Errorf("row %d norm = %v", i, n)
		}
	}
}

func TestTFIDF_EmptyCollection(t *testing.T) {
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen)
	res, err := svc.TFIDF(context.Background(), Request{Texts: []string{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Shape != [2]int{0, 0} || len(res.Matrix) != 0 || len(res.Vocabulary) != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestValidation(t *testing.T) {
	svc := New(Limits{MaxDocuments: 3, MaxFeatures: 50}, vectorspace.TieBreakFirstSeen)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"missing texts", Request{}, "texts"},
		{"too many documents", Request{Texts: []string{"a", "b", "c", "d"}}, "texts"},
		{"zero max_features", Request{Texts: []string{"a"}, MaxFeatures: intPtr(0)}, "max_features"},
		{"negative max_features", Request{Texts: []string{"a"}, MaxFeatures: intPtr(-3)}, "max_features"},
		{"max_features above limit", Request{Texts: []string{"a"}, MaxFeatures: intPtr(51)}, "max_features"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BagOfWords(ctx, tc.req)
			var ie *domain.InvalidInputError
			if !errors.As(err, &ie) || ie.Field != tc.field {
				t.Fatalf("expected InvalidInputError on %q, got %v", tc.field, err)
			}
		})
	}

	_, err := svc.LSA(ctx, Request{Texts: []string{"a b", "c d"}, Components: intPtr(0)})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for n_components=0, got %v", err)
	}
}

func TestLSA(t *testing.T) {
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen)
	res, err := svc.LSA(context.Background(), Request{
		Texts:       samples,
		MaxFeatures: intPtr(30),
		Components:  intPtr(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Transformed) != len(samples) || len(res.Transformed[0]) != 2 {
		t.Errorf("transformed shape = %dx%d", len(res.Transformed), len(res.Transformed[0]))
	}
	if len(res.Components) != 2 || len(res.Variance) != 2 {
		t.Errorf("components = %d, variance = %d", len(res.Components), len(res.Variance))
	}
}

func TestLSA_DefaultComponentsTooLarge(t *testing.T) {
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen)
	_, err := svc.LSA(context.Background(), Request{Texts: []string{"alpha beta", "gamma delta"}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for 5 components over 2 documents, got %v", err)
	}
}

func TestEmbeddings(t *testing.T) {
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen)
	res, err := svc.Embeddings(context.Background(), Request{
		Texts:       samples,
		MaxFeatures: intPtr(25),
		Components:  intPtr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != len(samples) || len(res.Embeddings[0]) != 3 {
		t.Errorf("embeddings shape = %dx%d", len(res.Embeddings), len(res.Embeddings[0]))
	}
}

func TestCache_HitSkipsComputation(t *testing.T) {
	cache := newMockCache()
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen).WithCache(cache)
	ctx := context.Background()
	req := Request{Texts: []string{"a b", "a a"}, MaxFeatures: intPtr(2)}

	first, err := svc.TFIDF(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("puts = %d, want 1", cache.puts)
	}

	second, err := svc.TFIDF(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Errorf("cache hit must not store again, puts = %d", cache.puts)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs:\n%v\n%v", first, second)
	}

	// Same texts under a different operation must not share the entry.
	if _, err := svc.BagOfWords(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 2 {
		t.Errorf("puts = %d, want 2", cache.puts)
	}
}

func TestCache_NotWrittenOnError(t *testing.T) {
	cache := newMockCache()
	svc := New(DefaultLimits(), vectorspace.TieBreakFirstSeen).WithCache(cache)

	_, err := svc.LSA(context.Background(), Request{Texts: []string{"!!!"}, Components: intPtr(1)})
	if err == nil {
		t.Fatal("expected error")
	}
	if cache.puts != 0 {
		t.Errorf("puts = %d, want 0", cache.puts)
	}
}
