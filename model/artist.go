package model

import "time"

// Artist represents an artist in the local catalog.
type Artist struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	RefID      *string    `json:"refId,omitempty" gorm:"uniqueIndex:uq_artists_ref_id;size:64"`
	Name       string     `json:"name" gorm:"size:512;index"`
	Genres     StringList `json:"genres" gorm:"type:json"`
	Images     ImageList  `json:"images" gorm:"type:json"`
	Popularity int        `json:"popularity"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Ref returns the provider correlation id, empty when absent.
func (a Artist) Ref() string {
	if a.RefID == nil {
		return ""
	}
	return *a.RefID
}
