package services

import (
	"context"
)

// WatchlistService owns the set of watched shoe ids. Reads use the in-memory
// copy; every toggle is written through immediately.
type WatchlistService struct {
	ids   []string
	set   map[string]bool
	store StateStore
}

// NewWatchlistService loads the watchlist from store once.
func NewWatchlistService(ctx context.Context, store StateStore) (*WatchlistService, error) {
	ids, err := store.LoadWatchlist(ctx)
	if err != nil {
		return nil, err
	}
	s := &WatchlistService{store: store}
	s.replace(ids)
	return s, nil
}

func (s *WatchlistService) replace(ids []string) {
	s.ids = ids
	s.set = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.set[id] = true
	}
}

// IsWatched reports whether id is on the watchlist. Ids of shoes that no
// longer exist are kept and still report true.
func (s *WatchlistService) IsWatched(id string) bool {
	return s.set[id]
}

// Toggle removes id if present, otherwise appends it, then persists the result.
// On a failed write the in-memory set is left unchanged.
func (s *WatchlistService) Toggle(ctx context.Context, id string) error {
	var next []string
	if s.set[id] {
		next = make([]string, 0, len(s.ids))
		for _, existing := range s.ids {
			if existing != id {
				next = append(next, existing)
			}
		}
	} else {
		next = make([]string, len(s.ids), len(s.ids)+1)
		copy(next, s.ids)
		next = append(next, id)
	}

	if err := s.store.SaveWatchlist(ctx, next); err != nil {
		return err
	}
	s.replace(next)
	return nil
}

// IDs returns the watched ids in stored order.
func (s *WatchlistService) IDs() []string {
	return append([]string{}, s.ids...)
}

// Len returns the number of watched ids.
func (s *WatchlistService) Len() int {
	return len(s.ids)
}
