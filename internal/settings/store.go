package settings

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
)

// State describes where the visible copy came from.
type State string

const (
	StateUninitialized    State = "uninitialized"
	StateLoading          State = "loading"
	StateReadyWithData    State = "ready-with-data"
	StateReadyWithDefault State = "ready-with-default"
	StateSaving           State = "saving"
)

// Snapshot is the visible copy together with its state.
type Snapshot struct {
	Settings models.SiteSettings `json:"settings"`
	State    State               `json:"state"`
}

// Store owns the persisted settings row and the copy served to pages.
// The visible copy only changes after a successful load or a committed save.
type Store struct {
	db  *gorm.DB
	log *zap.Logger

	mu      sync.RWMutex
	current models.SiteSettings
	state   State
}

// NewStore constructs a Store. Nothing is read until Load is called.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		db:      db,
		log:     log,
		current: DefaultSiteSettings(),
		state:   StateUninitialized,
	}
}

// Load reads the settings row. A missing or empty row yields the defaults; a
// storage failure also yields the defaults and is only logged.
func (s *Store) Load(ctx context.Context) models.SiteSettings {
	s.setState(StateLoading)

	loaded, state := s.read(ctx)

	s.mu.Lock()
	s.current = loaded
	s.state = state
	s.mu.Unlock()

	return loaded.Clone()
}

// Reload refreshes the visible copy from storage and returns the new snapshot.
func (s *Store) Reload(ctx context.Context) Snapshot {
	s.Load(ctx)
	return s.Current()
}

// Current returns the visible copy without touching storage.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Settings: s.current.Clone(), State: s.state}
}

// Save merges the patch into the stored row, creating the row from the
// defaults when none exists yet. On failure the visible copy and its state
// are left as they were.
func (s *Store) Save(ctx context.Context, patch Patch) (models.SiteSettings, error) {
	if err := patch.Validate(); err != nil {
		return models.SiteSettings{}, err
	}

	s.mu.Lock()
	previous := s.state
	s.state = StateSaving
	s.mu.Unlock()

	saved, err := s.persist(ctx, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = previous
		s.log.Error("settings save failed", zap.Error(err))
		return models.SiteSettings{}, err
	}
	s.current = saved
	s.state = StateReadyWithData
	return saved.Clone(), nil
}

func (s *Store) read(ctx context.Context) (models.SiteSettings, State) {
	var row models.SiteSettings
	err := s.db.WithContext(ctx).First(&row, "id = ?", models.SiteSettingsID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return DefaultSiteSettings(), StateReadyWithDefault
	case err != nil:
		s.log.Warn("settings load failed, serving defaults", zap.Error(err))
		return DefaultSiteSettings(), StateReadyWithDefault
	case row.IsEmpty():
		return DefaultSiteSettings(), StateReadyWithDefault
	}
	row.Normalize()
	return row, StateReadyWithData
}

func (s *Store) persist(ctx context.Context, patch Patch) (models.SiteSettings, error) {
	var saved models.SiteSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SiteSettings
		err := tx.First(&existing, "id = ?", models.SiteSettingsID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			saved = DefaultSiteSettings()
			patch.Apply(&saved)
			saved.Normalize()
			return tx.Create(&saved).Error
		}

		if existing.IsEmpty() {
			seeded := DefaultSiteSettings()
			seeded.CreatedAt = existing.CreatedAt
			existing = seeded
		}
		patch.Apply(&existing)
		existing.Normalize()
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		saved = existing
		return nil
	})
	if err != nil {
		return models.SiteSettings{}, err
	}
	return saved, nil
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
