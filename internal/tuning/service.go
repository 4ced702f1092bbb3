package tuning

import (
	"context"
	"sync"
	"time"

	"github.com/wfedor/telecast/internal/db"
	"github.com/wfedor/telecast/internal/logger"
	"github.com/wfedor/telecast/internal/models"
)

const remoteSyncTimeout = 5 * time.Second

// RemoteStore is the optional second storage tier for the preference log,
// keyed by (user, video). Synced best-effort; the local store stays
// authoritative for the current session.
type RemoteStore interface {
	Upsert(ctx context.Context, userID string, pref *models.Preference) error
	Remove(ctx context.Context, userID, videoID string) error
	List(ctx context.Context, userID string) ([]*models.Preference, error)
}

// Service owns the preference log and the derived tuning profile. The
// profile is a process-wide singleton guarded by a read-write mutex and is
// fully rebuilt on every change.
type Service struct {
	local  *db.PreferenceRepository
	remote RemoteStore
	userID string

	mu      sync.RWMutex
	profile *Profile
}

// NewService creates a new tuning service instance. remote may be nil when
// no remote tier is configured.
func NewService(local *db.PreferenceRepository, remote RemoteStore, userID string) *Service {
	return &Service{
		local:   local,
		remote:  remote,
		userID:  userID,
		profile: EmptyProfile(),
	}
}

// Profile returns the current tuning profile. Safe for concurrent use; the
// returned profile is never mutated after publication.
func (s *Service) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Load reads the merged preference log and rebuilds the profile. Storage
// errors degrade to an empty profile; personalization never blocks startup.
func (s *Service) Load(ctx context.Context, authenticated bool) {
	log, err := s.mergedLog(ctx, authenticated)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Msg("Failed to load preference log; starting with empty profile")
		log = nil
	}

	s.publish(BuildProfile(log))

	logger.Log.Info().
		Int("preferences", len(log)).
		Msg("Tuning profile loaded")
}

// RecordPreference appends or overwrites the preference for a video, extracts
// keywords from the title, rebuilds the profile, and fires a best-effort
// remote upsert when the viewer is authenticated. The local write is
// synchronous and authoritative.
func (s *Service) RecordPreference(ctx context.Context, videoID, action string, channelID *string, title string, authenticated bool) (*models.Preference, error) {
	if !models.ValidAction(action) {
		return nil, ErrInvalidAction
	}

	pref := &models.Preference{
		VideoID:   videoID,
		UserID:    s.userID,
		Action:    action,
		ChannelID: channelID,
		Keywords:  ExtractKeywords(title),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.local.Upsert(ctx, pref); err != nil {
		logger.Log.Error().
			Err(err).
			Str("video_id", videoID).
			Str("action", action).
			Msg("Failed to record preference locally")
		return nil, err
	}

	s.rebuild(ctx)

	if authenticated && s.remote != nil {
		// Fire-and-forget; a remote failure must not block the UI
		go func(p models.Preference) {
			syncCtx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
			defer cancel()
			if err := s.remote.Upsert(syncCtx, s.userID, &p); err != nil {
				logger.Log.Warn().
					Err(err).
					Str("video_id", p.VideoID).
					Msg("Remote preference sync failed")
			}
		}(*pref)
	}

	logger.Log.Info().
		Str("video_id", videoID).
		Str("action", action).
		Int("keywords", len(pref.Keywords)).
		Msg("Preference recorded")

	return pref, nil
}

// RemovePreference deletes the preference for a video and rebuilds the
// profile
func (s *Service) RemovePreference(ctx context.Context, videoID string, authenticated bool) error {
	if err := s.local.Delete(ctx, videoID); err != nil {
		if db.IsNotFound(err) {
			return ErrPreferenceNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("video_id", videoID).
			Msg("Failed to remove preference")
		return err
	}

	s.rebuild(ctx)

	if authenticated && s.remote != nil {
		go func() {
			syncCtx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
			defer cancel()
			if err := s.remote.Remove(syncCtx, s.userID, videoID); err != nil {
				logger.Log.Warn().
					Err(err).
					Str("video_id", videoID).
					Msg("Remote preference removal failed")
			}
		}()
	}

	logger.Log.Info().
		Str("video_id", videoID).
		Msg("Preference removed")

	return nil
}

// List returns the local preference log
func (s *Service) List(ctx context.Context) ([]*models.Preference, error) {
	return s.local.List(ctx)
}

// mergedLog merges the local and remote preference logs by video ID. Remote
// entries overwrite local ones for the same key, but remote absence never
// deletes a local-only entry.
func (s *Service) mergedLog(ctx context.Context, authenticated bool) ([]*models.Preference, error) {
	local, err := s.local.List(ctx)
	if err != nil {
		return nil, err
	}

	if !authenticated || s.remote == nil {
		return local, nil
	}

	remote, err := s.remote.List(ctx, s.userID)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Msg("Remote preference fetch failed; using local log only")
		return local, nil
	}

	byVideo := make(map[string]*models.Preference, len(local))
	order := make([]string, 0, len(local))
	for _, pref := range local {
		byVideo[pref.VideoID] = pref
		order = append(order, pref.VideoID)
	}
	for _, pref := range remote {
		if _, ok := byVideo[pref.VideoID]; !ok {
			order = append(order, pref.VideoID)
		}
		byVideo[pref.VideoID] = pref
	}

	merged := make([]*models.Preference, 0, len(order))
	for _, id := range order {
		merged = append(merged, byVideo[id])
	}
	return merged, nil
}

// rebuild re-folds the local log into a fresh profile. Rebuild failures keep
// the previous profile in place.
func (s *Service) rebuild(ctx context.Context) {
	log, err := s.local.List(ctx)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Msg("Failed to reload preference log; keeping previous profile")
		return
	}
	s.publish(BuildProfile(log))
}

func (s *Service) publish(profile *Profile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}
