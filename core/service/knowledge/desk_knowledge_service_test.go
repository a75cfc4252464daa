package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/apperr"
)

type fakeKnowledgeRepo struct {
	entries map[string]string
	err     error
}

func newFakeKnowledgeRepo() *fakeKnowledgeRepo {
	return &fakeKnowledgeRepo{entries: map[string]string{}}
}

func (f *fakeKnowledgeRepo) Upsert(ctx context.Context, entry domain.KnowledgeEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries[entry.ID] = entry.Content
	return nil
}

func (f *fakeKnowledgeRepo) ListAll(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	result := make([]domain.KnowledgeEntry, 0, len(f.entries))
	for id, content := range f.entries {
		result = append(result, domain.KnowledgeEntry{ID: id, Content: content})
	}
	return result, nil
}

type fakeRebuilder struct {
	calls int
	err   error
}

func (f *fakeRebuilder) Rebuild(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestUpsertStoresAndRebuilds(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	rebuilder := &fakeRebuilder{}
	svc := NewService(repo, rebuilder, zerolog.Nop())

	if err := svc.Upsert(context.Background(), "kb-1", "Refunds take 5 business days."); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if got := repo.entries["kb-1"]; got != "Refunds take 5 business days." {
		t.Errorf("entry not stored, got %q", got)
	}
	if rebuilder.calls != 1 {
		t.Errorf("expected one synchronous rebuild, got %d", rebuilder.calls)
	}
}

func TestUpsertOverwritesExistingEntry(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	svc := NewService(repo, &fakeRebuilder{}, zerolog.Nop())

	if err := svc.Upsert(context.Background(), "kb-1", "Old content."); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := svc.Upsert(context.Background(), "kb-1", "New content."); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Errorf("expected single entry after overwrite, got %d", len(repo.entries))
	}
	if got := repo.entries["kb-1"]; got != "New content." {
		t.Errorf("expected overwritten content, got %q", got)
	}
}

func TestUpsertGeneratesIDWhenMissing(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	svc := NewService(repo, &fakeRebuilder{}, zerolog.Nop())

	if err := svc.Upsert(context.Background(), "", "Generated id content."); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	for id := range repo.entries {
		if id == "" {
			t.Error("expected generated id, got empty")
		}
	}
}

func TestUpsertRejectsEmptyContent(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	rebuilder := &fakeRebuilder{}
	svc := NewService(repo, rebuilder, zerolog.Nop())

	err := svc.Upsert(context.Background(), "kb-1", "   ")
	if err == nil {
		t.Fatal("expected error for blank content")
	}
	if apperr.GetHTTPStatus(err) != 400 {
		t.Errorf("expected 400 mapping, got %d", apperr.GetHTTPStatus(err))
	}
	if rebuilder.calls != 0 {
		t.Errorf("expected no rebuild on rejected upsert, got %d", rebuilder.calls)
	}
}

func TestUpsertPropagatesRebuildFailure(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	rebuilder := &fakeRebuilder{err: errors.New("embedding endpoint down")}
	svc := NewService(repo, rebuilder, zerolog.Nop())

	if err := svc.Upsert(context.Background(), "kb-1", "Content."); err == nil {
		t.Fatal("expected rebuild failure to surface")
	}
}
