package repository

import (
	"context"

	"melodex/model"

	"gorm.io/gorm"
)

// PlaylistRepository defines the interface for playlist data operations.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Playlist, error)
	Delete(ctx context.Context, id int64) error
	AddTrack(ctx context.Context, playlistID, trackID int64) error
	RemoveTrack(ctx context.Context, playlistID, trackID int64) error
	TrackIDs(ctx context.Context, playlistID int64) ([]int64, error)
}

type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a playlist repository backed by the given database.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return wrapStorage("create playlist", err)
	}
	return nil
}

func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).First(&playlist, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get playlist", err)
	}
	return &playlist, nil
}

func (r *gormPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]model.Playlist, error) {
	playlists := make([]model.Playlist, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, wrapStorage("list playlists", err)
	}
	return playlists, nil
}

func (r *gormPlaylistRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistTrack{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Playlist{}, id).Error
	})
	if err != nil {
		return wrapStorage("delete playlist", err)
	}
	return nil
}

func (r *gormPlaylistRepository) AddTrack(ctx context.Context, playlistID, trackID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.PlaylistTrack{}).
		Where("playlist_id = ?", playlistID).
		Count(&count).Error; err != nil {
		return wrapStorage("add playlist track", err)
	}

	entry := model.PlaylistTrack{
		PlaylistID: playlistID,
		TrackID:    trackID,
		Position:   int(count),
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if isDuplicate(err) {
			return nil // already in the playlist
		}
		return wrapStorage("add playlist track", err)
	}
	return nil
}

func (r *gormPlaylistRepository) RemoveTrack(ctx context.Context, playlistID, trackID int64) error {
	err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND track_id = ?", playlistID, trackID).
		Delete(&model.PlaylistTrack{}).Error
	if err != nil {
		return wrapStorage("remove playlist track", err)
	}
	return nil
}

func (r *gormPlaylistRepository) TrackIDs(ctx context.Context, playlistID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).
		Model(&model.PlaylistTrack{}).
		Where("playlist_id = ?", playlistID).
		Order("position ASC").
		Pluck("track_id", &ids).Error
	if err != nil {
		return nil, wrapStorage("list playlist tracks", err)
	}
	return ids, nil
}
