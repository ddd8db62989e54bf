package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mealdex/mealdex/internal/domain"
)

type fakeEmbedder struct {
	calls   int
	results []domain.EmbeddingResult
	errs    []error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	i := f.calls
	f.calls++
	var res domain.EmbeddingResult
	var err error
	if i < len(f.results) {
		res = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return res, err
}

func TestRetryEmbedder_SuccessFirstTry(t *testing.T) {
	inner := &fakeEmbedder{
		results: []domain.EmbeddingResult{{Embedding: []float32{1, 2}}},
		errs:    []error{nil},
	}
	r := NewRetryEmbedder(inner, zap.NewNop())

	result, err := r.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call, got %d", inner.calls)
	}
	if len(result.Embedding) != 2 {
		t.Errorf("expected 2 dims, got %d", len(result.Embedding))
	}
}

func TestRetryEmbedder_RecoversOnSecondTry(t *testing.T) {
	inner := &fakeEmbedder{
		results: []domain.EmbeddingResult{{}, {Embedding: []float32{3}}},
		errs:    []error{errors.New("transient"), nil},
	}
	r := NewRetryEmbedder(inner, zap.NewNop())

	result, err := r.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 calls, got %d", inner.calls)
	}
	if len(result.Embedding) != 1 {
		t.Errorf("expected recovered result, got %+v", result)
	}
}

func TestRetryEmbedder_GivesUpAfterOneRetry(t *testing.T) {
	provider := errors.New("down")
	inner := &fakeEmbedder{errs: []error{provider, provider, provider}}
	r := NewRetryEmbedder(inner, zap.NewNop())

	_, err := r.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error after failed retry")
	}
	if inner.calls != 2 {
		t.Errorf("expected exactly 2 calls, got %d", inner.calls)
	}
	if !errors.Is(err, provider) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestRetryEmbedder_NoRetryOnCancelledContext(t *testing.T) {
	inner := &fakeEmbedder{errs: []error{errors.New("cancelled mid-call")}}
	r := NewRetryEmbedder(inner, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Embed(ctx, "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Errorf("expected no retry on cancelled context, got %d calls", inner.calls)
	}
}

func TestInstrumentedEmbedder_PassesThrough(t *testing.T) {
	inner := &fakeEmbedder{
		results: []domain.EmbeddingResult{{Embedding: []float32{1}, TotalTokens: 5}},
		errs:    []error{nil},
	}
	p := NewInstrumentedEmbedder(inner, "test-model", zap.NewNop())

	result, err := p.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalTokens != 5 {
		t.Errorf("TotalTokens = %d, expected 5", result.TotalTokens)
	}
}

func TestInstrumentedEmbedder_WrapsError(t *testing.T) {
	sentinel := errors.New("boom")
	inner := &fakeEmbedder{errs: []error{sentinel}}
	p := NewInstrumentedEmbedder(inner, "test-model", zap.NewNop())

	_, err := p.Embed(context.Background(), "hello")
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}
