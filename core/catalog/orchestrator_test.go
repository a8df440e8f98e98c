package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

type testItem struct {
	refID string
	name  string
}

func (t testItem) Ref() string { return t.refID }

func refs(ids ...string) []testItem {
	items := make([]testItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, testItem{refID: id, name: "item " + id})
	}
	return items
}

func refIDs(items []testItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.refID)
	}
	return out
}

// stubSource drives SatisfyPage with canned pages and records every call.
type stubSource struct {
	local      []testItem
	localErr   error
	pages      [][]testItem // consumed in order; past the end means empty page
	fetchErr   error
	stored     map[string]bool
	storedErr  error
	persistErr error

	fetchOffsets []int
	storedCalls  [][]string
	persisted    [][]testItem
}

func (s *stubSource) Local(ctx context.Context, limit, skip int) ([]testItem, error) {
	if s.localErr != nil {
		return nil, s.localErr
	}
	return s.local, nil
}

func (s *stubSource) FetchPage(ctx context.Context, offset, limit int) ([]testItem, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	s.fetchOffsets = append(s.fetchOffsets, offset)
	page := len(s.fetchOffsets) - 1
	if page >= len(s.pages) {
		return nil, nil
	}
	return s.pages[page], nil
}

func (s *stubSource) StoredRefIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	if s.storedErr != nil {
		return nil, s.storedErr
	}
	s.storedCalls = append(s.storedCalls, ids)
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.stored[id] {
			out[id] = true
		}
	}
	return out, nil
}

func (s *stubSource) Persist(ctx context.Context, items []testItem) error {
	s.persisted = append(s.persisted, items)
	return s.persistErr
}

func satisfy(t *testing.T, src *stubSource, pageSize, skip int) []testItem {
	t.Helper()
	sched := &Scheduler{}
	got, err := SatisfyPage[testItem](context.Background(), src, sched, pageSize, skip)
	if err != nil {
		t.Fatalf("SatisfyPage() error = %v", err)
	}
	sched.Wait()
	return got
}

func TestSatisfyPageLocalHitSkipsProvider(t *testing.T) {
	src := &stubSource{local: refs("a", "b", "c")}

	got := satisfy(t, src, 3, 0)

	if !reflect.DeepEqual(refIDs(got), []string{"a", "b", "c"}) {
		t.Errorf("results = %v, want local page", refIDs(got))
	}
	if len(src.fetchOffsets) != 0 {
		t.Errorf("provider fetched %d times on a full local page, want 0", len(src.fetchOffsets))
	}
	if len(src.persisted) != 0 {
		t.Errorf("persisted %d batches on a full local page, want 0", len(src.persisted))
	}
}

func TestSatisfyPageBackfillsShortfall(t *testing.T) {
	src := &stubSource{
		local: refs("a", "b", "c"),
		pages: [][]testItem{refs("p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10")},
	}

	got := satisfy(t, src, 10, 0)

	want := []string{"a", "b", "c", "p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	if !reflect.DeepEqual(refIDs(got), want) {
		t.Errorf("results = %v, want %v", refIDs(got), want)
	}
	if len(got) != 10 {
		t.Errorf("len(results) = %d, want full page of 10", len(got))
	}
}

func TestSatisfyPageOffsetsAccountForSkip(t *testing.T) {
	src := &stubSource{
		pages: [][]testItem{
			// Full page, but a repeat keeps the shortfall open so the
			// loop advances to the next offset.
			refs("p1", "p2", "p3", "p4", "p4"),
			refs("p5", "p6", "p7", "p8", "p9"),
		},
	}

	satisfy(t, src, 5, 15)

	// offset = page*pageSize + skip
	if !reflect.DeepEqual(src.fetchOffsets, []int{15, 20}) {
		t.Errorf("fetch offsets = %v, want [15 20]", src.fetchOffsets)
	}
}

func TestSatisfyPageStopsOnShortProviderPage(t *testing.T) {
	src := &stubSource{
		local: refs("a"),
		pages: [][]testItem{refs("p1", "p2")}, // short page: provider exhausted
	}

	got := satisfy(t, src, 10, 0)

	want := []string{"a", "p1", "p2"}
	if !reflect.DeepEqual(refIDs(got), want) {
		t.Errorf("results = %v, want short page %v", refIDs(got), want)
	}
	if len(src.fetchOffsets) != 1 {
		t.Errorf("provider fetched %d times after exhaustion, want 1", len(src.fetchOffsets))
	}
}

func TestSatisfyPageEmptyEverywhere(t *testing.T) {
	src := &stubSource{}

	got := satisfy(t, src, 10, 0)

	if len(got) != 0 {
		t.Errorf("results = %v, want empty", refIDs(got))
	}
	if len(src.persisted) != 0 {
		t.Errorf("persisted %d batches with nothing discovered, want 0", len(src.persisted))
	}
}

func TestSatisfyPageDeduplicates(t *testing.T) {
	src := &stubSource{
		local: refs("a", "b"),
		pages: [][]testItem{
			// "a" collides with the local page, "p1" repeats within the
			// request, "" has no provider identity.
			{{refID: "a"}, {refID: "p1"}, {refID: "p1"}, {refID: ""}, {refID: "p2"}},
			refs("p2", "p3", "p4", "p5", "p6"),
		},
	}

	got := satisfy(t, src, 5, 0)

	want := []string{"a", "b", "p1", "p2", "p3"}
	if !reflect.DeepEqual(refIDs(got), want) {
		t.Errorf("results = %v, want %v", refIDs(got), want)
	}
}

func TestSatisfyPagePersistsOnlyUnstored(t *testing.T) {
	src := &stubSource{
		local:  refs("a"),
		pages:  [][]testItem{refs("p1", "p2", "p3")},
		stored: map[string]bool{"p2": true},
	}

	got := satisfy(t, src, 4, 0)

	// Stored rows still appear in results; they just skip the write.
	want := []string{"a", "p1", "p2", "p3"}
	if !reflect.DeepEqual(refIDs(got), want) {
		t.Errorf("results = %v, want %v", refIDs(got), want)
	}
	if len(src.persisted) != 1 {
		t.Fatalf("persist batches = %d, want 1", len(src.persisted))
	}
	if !reflect.DeepEqual(refIDs(src.persisted[0]), []string{"p1", "p3"}) {
		t.Errorf("persisted = %v, want [p1 p3]", refIDs(src.persisted[0]))
	}
}

func TestSatisfyPageBatchesStoredLookupPerPage(t *testing.T) {
	src := &stubSource{
		pages: [][]testItem{
			{{refID: "p1"}, {refID: "p1"}},
			refs("p2", "p3"),
		},
	}

	satisfy(t, src, 2, 0)

	if len(src.storedCalls) != 2 {
		t.Fatalf("stored lookups = %d, want one per provider page", len(src.storedCalls))
	}
	if !reflect.DeepEqual(src.storedCalls[0], []string{"p1"}) {
		t.Errorf("first lookup = %v", src.storedCalls[0])
	}
	if !reflect.DeepEqual(src.storedCalls[1], []string{"p2", "p3"}) {
		t.Errorf("second lookup = %v", src.storedCalls[1])
	}
}

func TestSatisfyPageIdempotentRequery(t *testing.T) {
	// First query discovers and persists; once those rows are local the
	// requery serves them without touching the provider or writing again.
	first := &stubSource{pages: [][]testItem{refs("p1", "p2", "p3")}}
	firstGot := satisfy(t, first, 3, 0)

	if len(first.persisted) != 1 {
		t.Fatalf("persist batches = %d, want 1", len(first.persisted))
	}

	second := &stubSource{local: first.persisted[0]}
	secondGot := satisfy(t, second, 3, 0)

	if !reflect.DeepEqual(refIDs(firstGot), refIDs(secondGot)) {
		t.Errorf("requery results = %v, want %v", refIDs(secondGot), refIDs(firstGot))
	}
	if len(second.fetchOffsets) != 0 {
		t.Errorf("requery fetched %d provider pages, want 0", len(second.fetchOffsets))
	}
	if len(second.persisted) != 0 {
		t.Errorf("requery persisted %d batches, want 0", len(second.persisted))
	}
}

func TestSatisfyPageErrorPropagation(t *testing.T) {
	sentinel := errors.New("boom")
	tests := []struct {
		name string
		src  *stubSource
	}{
		{"local read fails", &stubSource{localErr: sentinel}},
		{"provider fetch fails", &stubSource{fetchErr: sentinel}},
		{"stored lookup fails", &stubSource{
			pages:     [][]testItem{refs("p1")},
			storedErr: sentinel,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &Scheduler{}
			_, err := SatisfyPage[testItem](context.Background(), tt.src, sched, 10, 0)
			if !errors.Is(err, sentinel) {
				t.Errorf("SatisfyPage() error = %v, want %v", err, sentinel)
			}
			sched.Wait()
			if len(tt.src.persisted) != 0 {
				t.Errorf("persisted %d batches after failure, want 0", len(tt.src.persisted))
			}
		})
	}
}

func TestSatisfyPagePersistFailureDoesNotAffectResults(t *testing.T) {
	src := &stubSource{
		pages:      [][]testItem{refs("p1", "p2", "p3")},
		persistErr: fmt.Errorf("disk full"),
	}

	got := satisfy(t, src, 3, 0)

	if !reflect.DeepEqual(refIDs(got), []string{"p1", "p2", "p3"}) {
		t.Errorf("results = %v, want provider page despite persist failure", refIDs(got))
	}
}
