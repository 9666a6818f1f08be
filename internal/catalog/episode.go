package catalog

import (
	"context"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
	"anidex.org/internal/ids"
)

// Episode is the playable unit of a season/source pair. MediaID and
// FileName stay unset until the first successful media resolution.
type Episode struct {
	ID       string
	Name     string
	CoverID  *string
	SeasonID int64
	SourceID int64
	MediaID  *string
	FileName *string
	IsNSFW   bool
	Sequence int32
}

// EpisodeDraft carries the caller-supplied fields for creation.
type EpisodeDraft struct {
	CoverID  *string
	SeasonID int64
	SourceID int64
	IsNSFW   bool
	Sequence int32
}

// EpisodeUpdate carries the caller-supplied fields for an update. MediaURL
// is the external share link; nil keeps the stored media reference.
type EpisodeUpdate struct {
	ID       string
	CoverID  *string
	MediaURL *string
	Sequence int32
}

// MediaResolver resolves external playable-media references. Implemented
// by internal/media; the episode lifecycle only sees this interface.
type MediaResolver interface {
	// MediaID derives the media id from a share URL by stripping the
	// fixed prefix.
	MediaID(url string) (string, error)
	// FileName resolves the stable file name for a media id via the
	// external host.
	FileName(ctx context.Context, mediaID string) (string, error)
}

// NewEpisode authorizes the actor and builds a validated episode with a
// generated id and a content name derived from it.
func NewEpisode(draft EpisodeDraft, actor auth.Identity) (*Episode, error) {
	if err := auth.Authorize(actor, auth.AdminOrUploader); err != nil {
		return nil, err
	}
	id := ids.NewCompactUUID()
	episode := &Episode{
		ID:       id,
		Name:     contentName(id),
		CoverID:  draft.CoverID,
		SeasonID: draft.SeasonID,
		SourceID: draft.SourceID,
		IsNSFW:   draft.IsNSFW,
		Sequence: draft.Sequence,
	}
	if err := episode.Validate(); err != nil {
		return nil, err
	}
	return episode, nil
}

// ApplyUpdate runs the update protocol on a fetched episode, including the
// conditional media sub-resolution. The external lookup runs only when the
// derived media id differs from the stored one, so repeating an update with
// the same URL never reaches the external host. The episode is not mutated
// past the point of a failed lookup.
func (e *Episode) ApplyUpdate(ctx context.Context, update EpisodeUpdate, actor auth.Identity, resolver MediaResolver) error {
	if err := auth.Authorize(actor, auth.AdminOrUploader); err != nil {
		return err
	}
	if e.ID == "" {
		return apperrors.New(apperrors.KindUnknown, "entity id is not set")
	}
	if update.ID != e.ID {
		return apperrors.New(apperrors.KindConflict, "entity id does not match the request")
	}
	if e.MediaID == nil && update.MediaURL == nil {
		return apperrors.New(apperrors.KindInvalidData, "media URL is required")
	}

	if update.MediaURL != nil {
		mediaID, err := resolver.MediaID(*update.MediaURL)
		if err != nil {
			return err
		}
		if e.MediaID == nil || *e.MediaID != mediaID {
			fileName, err := resolver.FileName(ctx, mediaID)
			if err != nil {
				return err
			}
			e.MediaID = &mediaID
			e.FileName = &fileName
		}
	}

	e.CoverID = update.CoverID
	e.Sequence = update.Sequence
	return e.Validate()
}

// Validate runs the structural checks.
func (e *Episode) Validate() error {
	var v apperrors.Violations
	validateOptionalRef(e.CoverID, "cover_id", &v)
	validateOptionalRef(e.MediaID, "media_id", &v)
	validateOptionalRef(e.FileName, "file_name", &v)
	return v.Err()
}

// contentName derives the public content name from the episode id. The
// digest is stable so re-deriving for the same id always agrees.
func contentName(id string) string {
	sum := sha3.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
