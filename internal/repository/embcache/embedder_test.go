package embcache

import (
	"testing"
)

func TestVectorCacheBytes_RoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 0, 1e10}
	data := vectorToCacheBytes(vec)

	got, err := bytesToVector(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(vec) {
		t.Fatalf("expected %d floats, got %d", len(vec), len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("element %d: got %f, want %f", i, got[i], vec[i])
		}
	}
}

func TestBytesToVector_TruncatedData(t *testing.T) {
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for data not a multiple of 4 bytes")
	}
}

func TestCacheKey_StableAndDistinct(t *testing.T) {
	c := &CachedEmbedder{}
	a := c.cacheKey("chicken soup")
	b := c.cacheKey("chicken soup")
	if a != b {
		t.Error("same text must produce the same cache key")
	}
	if a == c.cacheKey("beef stew") {
		t.Error("different texts must produce different cache keys")
	}
}
