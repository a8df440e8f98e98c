package model

import "time"

// Entity type tags distinguishing catalog-sourced records from user uploads.
const (
	TypeSong   = "Song"
	TypeAlbum  = "Album"
	TypeArtist = "Artist"
	TypeUpload = "Upload"
)

// Track represents a track in the local catalog. RefID correlates the row
// with the provider's record and is nil for user-uploaded tracks.
type Track struct {
	ID          int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	RefID       *string       `json:"refId,omitempty" gorm:"uniqueIndex:uq_tracks_ref_id;size:64"`
	Name        string        `json:"name" gorm:"size:512;index"`
	URL         string        `json:"url" gorm:"size:1024"`
	CoverImages ImageList     `json:"coverImg" gorm:"type:json"`
	ReleaseDate string        `json:"releaseDate" gorm:"size:32"`
	DiscNumber  int           `json:"discNumber"`
	TrackNumber int           `json:"trackNumber"`
	DurationMS  int           `json:"durationMs"`
	AlbumName   string        `json:"album" gorm:"size:512"`
	AlbumRefID  string        `json:"albumRefId" gorm:"size:64;index"`
	Artists     ArtistRefList `json:"artists" gorm:"type:json"`
	Genres      StringList    `json:"genres" gorm:"type:json"`
	Popularity  int           `json:"popularity"`
	Explicit    bool          `json:"explicit"`
	Type        string        `json:"type" gorm:"size:16"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Ref returns the provider correlation id, empty when the track has no
// provider origin.
func (t Track) Ref() string {
	if t.RefID == nil {
		return ""
	}
	return *t.RefID
}
