package admin

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ladle-cloud/ladle/internal/domain"
)

type mockArchiver struct {
	remaining int
	err       error
	gotScopes []string
	gotBy     string
	gotLimits []int
}

func (m *mockArchiver) ArchiveBatch(_ context.Context, scopeGroup, by string, limit int) (int, error) {
	m.gotScopes = append(m.gotScopes, scopeGroup)
	m.gotBy = by
	m.gotLimits = append(m.gotLimits, limit)
	if m.err != nil {
		return 0, m.err
	}
	n := limit
	if m.remaining < n {
		n = m.remaining
	}
	m.remaining -= n
	return n, nil
}

func TestWipe_ScopedToCallerGroup(t *testing.T) {
	ing := &mockArchiver{remaining: 3}
	rec := &mockArchiver{remaining: 5}
	svc := New(Config{}, zap.NewNop(),
		Collection{Name: "ingredients", Archiver: ing},
		Collection{Name: "recipes", Archiver: rec},
	)

	res, err := svc.Wipe(context.Background(), "kitchen-a", true)
	if err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	if res.Archived["ingredients"] != 3 || res.Archived["recipes"] != 5 {
		t.Errorf("archived = %v", res.Archived)
	}
	if res.Total() != 8 {
		t.Errorf("total = %d, want 8", res.Total())
	}
	if ing.gotScopes[0] != "kitchen-a" || ing.gotBy != "kitchen-a" {
		t.Errorf("scope = %q by = %q, want kitchen-a", ing.gotScopes[0], ing.gotBy)
	}
}

func TestWipe_AllGroupsSentinel(t *testing.T) {
	a := &mockArchiver{remaining: 1}
	svc := New(Config{}, zap.NewNop(), Collection{Name: "recipes", Archiver: a})

	_, err := svc.Wipe(context.Background(), "root", true)
	if err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	if a.gotScopes[0] != "" {
		t.Errorf("scope = %q, want empty for all groups", a.gotScopes[0])
	}
	if a.gotBy != "root" {
		t.Errorf("by = %q, want root", a.gotBy)
	}
}

func TestWipe_DrainsInBatches(t *testing.T) {
	a := &mockArchiver{remaining: 250}
	svc := New(Config{BatchSize: 100}, zap.NewNop(), Collection{Name: "recipes", Archiver: a})

	res, err := svc.Wipe(context.Background(), "kitchen-a", true)
	if err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	if res.Archived["recipes"] != 250 {
		t.Errorf("archived = %d, want 250", res.Archived["recipes"])
	}
	// Two full batches, then a short one that ends the loop.
	if len(a.gotLimits) != 3 {
		t.Errorf("batches = %d, want 3", len(a.gotLimits))
	}
}

func TestWipe_RequiresConfirmation(t *testing.T) {
	a := &mockArchiver{remaining: 10}
	svc := New(Config{}, zap.NewNop(), Collection{Name: "recipes", Archiver: a})

	_, err := svc.Wipe(context.Background(), "kitchen-a", false)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if len(a.gotLimits) != 0 {
		t.Error("archiver called without confirmation")
	}
}

func TestWipe_MissingGroup(t *testing.T) {
	svc := New(Config{}, zap.NewNop())

	_, err := svc.Wipe(context.Background(), "", true)
	if !errors.Is(err, domain.ErrMissingGroup) {
		t.Fatalf("error = %v, want ErrMissingGroup", err)
	}
}

func TestWipe_PartialFailureReportsCounts(t *testing.T) {
	ok := &mockArchiver{remaining: 2}
	bad := &mockArchiver{err: errors.New("store down")}
	svc := New(Config{}, zap.NewNop(),
		Collection{Name: "ingredients", Archiver: ok},
		Collection{Name: "recipes", Archiver: bad},
	)

	res, err := svc.Wipe(context.Background(), "kitchen-a", true)
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Archived["ingredients"] != 2 {
		t.Errorf("ingredients archived = %d, want 2", res.Archived["ingredients"])
	}
}

func TestWipe_BatchSizeClamp(t *testing.T) {
	a := &mockArchiver{remaining: 1}
	svc := New(Config{BatchSize: 10_000}, zap.NewNop(), Collection{Name: "recipes", Archiver: a})

	if _, err := svc.Wipe(context.Background(), "kitchen-a", true); err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	if a.gotLimits[0] != DefaultBatchSize {
		t.Errorf("limit = %d, want %d", a.gotLimits[0], DefaultBatchSize)
	}
}
