package catalog

import (
	"context"
	"sync"
)

// Entity is anything correlated with the provider by a refId. Ref returns
// the empty string for entities with no provider origin.
type Entity interface {
	Ref() string
}

// PageSource supplies SatisfyPage with one entity kind's reads and writes.
// Implementations fix the local filter, the provider query, and the
// enrichment that kind needs.
type PageSource[T Entity] interface {
	// Local reads the locally stored page, sorted, limited and skipped.
	Local(ctx context.Context, limit, skip int) ([]T, error)
	// FetchPage fetches one provider page at the given offset, normalized
	// to local shapes. A short page signals provider exhaustion.
	FetchPage(ctx context.Context, offset, limit int) ([]T, error)
	// StoredRefIDs reports which of the given refIds already exist in the
	// local store. Called once per provider page.
	StoredRefIDs(ctx context.Context, refIDs []string) (map[string]bool, error)
	// Persist writes newly discovered entities back to the local store.
	Persist(ctx context.Context, items []T) error
}

// Scheduler runs backfill persistence off the response path. Wait blocks
// until everything scheduled so far has finished; callers that need to
// observe persistence (tests, shutdown) wait on it explicitly, since
// SatisfyPage itself never does.
type Scheduler struct {
	wg sync.WaitGroup
}

// Go schedules fn.
func (s *Scheduler) Go(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Wait blocks until all scheduled work is done.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// SatisfyPage returns up to pageSize entities matching the source's filter,
// preferring local data and backfilling the shortfall from the provider.
//
// When the local store already satisfies the page no provider call is made.
// Otherwise provider pages are fetched in increasing offset order, each item
// deduplicated against everything fetched earlier in this request and
// against the local page, and checked for local existence once per page in
// a single batch read. New entities are scheduled for persistence after the
// result is assembled; the caller's response never waits on that write, and
// a failed write is logged and dropped.
//
// The loop stops once the page is full or the provider returns a short
// page. A short final result is valid; it means both sources are exhausted.
// Any storage or provider failure mid-flight aborts the whole call.
func SatisfyPage[T Entity](ctx context.Context, src PageSource[T], sched *Scheduler, pageSize, skip int) ([]T, error) {
	local, err := src.Local(ctx, pageSize, skip)
	if err != nil {
		return nil, err
	}
	if len(local) >= pageSize {
		return local[:pageSize], nil
	}

	localRefs := make(map[string]bool, len(local))
	for _, e := range local {
		if ref := e.Ref(); ref != "" {
			localRefs[ref] = true
		}
	}

	seen := make(map[string]bool)
	var toReturn []T
	var toPersist []T

	for page := 0; ; page++ {
		items, err := src.FetchPage(ctx, page*pageSize+skip, pageSize)
		if err != nil {
			return nil, err
		}

		fresh := make([]T, 0, len(items))
		freshRefs := make([]string, 0, len(items))
		for _, item := range items {
			ref := item.Ref()
			if ref == "" || seen[ref] || localRefs[ref] {
				continue
			}
			seen[ref] = true
			fresh = append(fresh, item)
			freshRefs = append(freshRefs, ref)
		}

		stored, err := src.StoredRefIDs(ctx, freshRefs)
		if err != nil {
			return nil, err
		}
		for _, item := range fresh {
			toReturn = append(toReturn, item)
			if !stored[item.Ref()] {
				toPersist = append(toPersist, item)
			}
		}

		if len(local)+len(toReturn) >= pageSize || len(items) < pageSize {
			break
		}
	}

	results := append(local, toReturn...)
	if len(results) > pageSize {
		results = results[:pageSize]
	}

	if len(toPersist) > 0 {
		sched.Go(func() {
			// The request context may already be done by the time this
			// runs; persistence gets its own.
			if err := src.Persist(context.Background(), toPersist); err != nil {
				logPersistFailure(len(toPersist), err)
			}
		})
	}

	return results, nil
}
