// Package services contains the use-case layer gluing providers,
// feature sources and the snapshot store together.
package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/core/domain"
	"github.com/novatorem/novatorem/internal/core/ports"
)

// SelectProvider picks the single active provider. Spotify wins when
// both are configured; a nil argument means that provider is not
// configured at all.
func SelectProvider(spotify, lastfm ports.SnapshotProvider) (ports.SnapshotProvider, error) {
	switch {
	case spotify != nil:
		return spotify, nil
	case lastfm != nil:
		return lastfm, nil
	default:
		return nil, domain.ErrNotConfigured
	}
}

// Resolution is the outcome of one resolve pass: either a track with
// its audio features, or an explicit nothing-to-show.
type Resolution struct {
	HasTrack bool
	Snapshot domain.TrackSnapshot
	Features domain.AudioFeatures
}

// Resolver coordinates the active provider, the optional feature
// source and the optional snapshot store.
type Resolver struct {
	provider ports.SnapshotProvider
	features ports.FeatureSource
	store    ports.SnapshotStore
	logger   *zap.Logger
}

// NewResolver constructs a Resolver. features and store may be nil;
// the resolver then falls back to default audio features and skips
// persistence.
func NewResolver(provider ports.SnapshotProvider, features ports.FeatureSource, store ports.SnapshotStore, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		provider: provider,
		features: features,
		store:    store,
		logger:   logger,
	}
}

// Resolve fetches the current snapshot from the active provider.
//
// A provider with no current or recent activity is not an error: the
// resolver falls back to the stored snapshot, and failing that reports
// HasTrack=false. Auth and upstream failures propagate unchanged and
// never consult the store.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	snapshot, err := r.provider.FetchSnapshot(ctx)
	if err == nil {
		r.persist(ctx, snapshot)
		return Resolution{
			HasTrack: true,
			Snapshot: snapshot,
			Features: r.enrich(ctx, snapshot),
		}, nil
	}

	if !errors.Is(err, domain.ErrNoActivity) {
		return Resolution{}, err
	}

	if r.store != nil {
		stored, serr := r.store.Latest(ctx)
		if serr == nil {
			return Resolution{
				HasTrack: true,
				Snapshot: stored,
				Features: r.enrich(ctx, stored),
			}, nil
		}
		if !errors.Is(serr, domain.ErrNotFound) {
			r.logger.Warn("snapshot store lookup failed", zap.Error(serr))
		}
	}

	return Resolution{Features: domain.DefaultAudioFeatures()}, nil
}

// enrich looks up audio features for the snapshot. Every failure is
// absorbed into the safe defaults: the card must render even when the
// feature lookup breaks.
func (r *Resolver) enrich(ctx context.Context, s domain.TrackSnapshot) domain.AudioFeatures {
	if r.features == nil {
		return domain.DefaultAudioFeatures()
	}

	var (
		features domain.AudioFeatures
		err      error
	)
	if s.TrackID != "" {
		features, err = r.features.FeaturesByTrackID(ctx, s.TrackID)
	} else if s.Title != "" {
		features, err = r.features.FeaturesByMetadata(ctx, s.Title, s.Artist)
	} else {
		return domain.DefaultAudioFeatures()
	}

	if err != nil {
		r.logger.Debug("audio feature lookup failed, using defaults",
			zap.String("track", s.Title),
			zap.Error(err))
		return domain.DefaultAudioFeatures()
	}

	return features
}

// persist saves the freshly resolved snapshot. Best effort: a broken
// store must not take the card down.
func (r *Resolver) persist(ctx context.Context, s domain.TrackSnapshot) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, s); err != nil {
		r.logger.Warn("snapshot store save failed", zap.Error(err))
	}
}
