package dashboard

import (
	"context"
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/platform/prefs"
	"github.com/clinexa/backoffice/internal/store"
)

type Service struct {
	store *store.Store
	prefs prefs.Store
	now   func() time.Time
}

func NewService(st *store.Store, pr prefs.Store) *Service {
	return &Service{store: st, prefs: pr, now: time.Now}
}

// Refresh recomputes the aggregates, publishes them into the snapshot and
// returns them.
func (s *Service) Refresh() model.DashboardStats {
	stats := Compute(s.store.Snapshot(), s.now())
	s.store.Dispatch(store.SetStats(stats))
	return stats
}

// Theme reads the user's stored display preference.
func (s *Service) Theme(ctx context.Context, userID string) (string, error) {
	return s.prefs.Theme(ctx, userID)
}

// SetTheme persists the preference and mirrors it into the snapshot.
func (s *Service) SetTheme(ctx context.Context, userID, theme string) error {
	if err := s.prefs.SetTheme(ctx, userID, theme); err != nil {
		return err
	}
	s.store.Dispatch(store.SetTheme(theme))
	return nil
}
