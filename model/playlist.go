package model

import "time"

// Playlist is a user-owned ordered collection of tracks.
type Playlist struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"userId" gorm:"index"`
	Name        string    `json:"name" gorm:"size:255"`
	Description string    `json:"description" gorm:"size:1024"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistTrack is one entry of a playlist.
type PlaylistTrack struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `json:"playlistId" gorm:"uniqueIndex:uq_playlist_track"`
	TrackID    int64     `json:"trackId" gorm:"uniqueIndex:uq_playlist_track"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}
