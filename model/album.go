package model

import "time"

// Album represents an album in the local catalog.
type Album struct {
	ID          int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	RefID       *string       `json:"refId,omitempty" gorm:"uniqueIndex:uq_albums_ref_id;size:64"`
	Name        string        `json:"name" gorm:"size:512;index"`
	ReleaseDate string        `json:"releaseDate" gorm:"size:32"`
	CoverImages ImageList     `json:"coverImg" gorm:"type:json"`
	Artists     ArtistRefList `json:"artists" gorm:"type:json"`
	TotalTracks int           `json:"totalTracks"`
	Popularity  int           `json:"popularity"`
	Type        string        `json:"type" gorm:"size:16"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Ref returns the provider correlation id, empty when absent.
func (a Album) Ref() string {
	if a.RefID == nil {
		return ""
	}
	return *a.RefID
}
