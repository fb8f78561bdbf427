package ports

import (
	"context"

	"github.com/novatorem/novatorem/internal/core/domain"
)

// SnapshotProvider is the uniform capability every upstream adapter
// implements: report what the user is listening to right now, or what
// they listened to most recently.
//
// FetchSnapshot returns domain.ErrNoActivity when the provider has no
// current or recent track; any other failure is a *domain.AuthError or
// *domain.ProviderError. Adapters never consult each other; composition
// is the resolver's job.
type SnapshotProvider interface {
	Name() domain.Provider
	FetchSnapshot(ctx context.Context) (domain.TrackSnapshot, error)
}

// FeatureSource supplies audio characteristics for a track, either by the
// provider-native track id or by a best-effort metadata lookup.
type FeatureSource interface {
	FeaturesByTrackID(ctx context.Context, trackID string) (domain.AudioFeatures, error)
	FeaturesByMetadata(ctx context.Context, title, artist string) (domain.AudioFeatures, error)
}

// SnapshotStore persists the single most recent resolved snapshot.
// Latest returns domain.ErrNotFound when nothing has been stored yet.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.TrackSnapshot) error
	Latest(ctx context.Context) (domain.TrackSnapshot, error)
}
