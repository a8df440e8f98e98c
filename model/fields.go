package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Image is one rendition of a cover/profile image as delivered by the
// catalog provider.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ArtistRef is a denormalized {name, refId} pair embedded in tracks and
// albums. RefID is empty for artists with no provider origin.
type ArtistRef struct {
	Name  string `json:"name"`
	RefID string `json:"refId,omitempty"`
}

// ImageList stores a JSON array of images in a single column.
type ImageList []Image

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// ArtistRefList stores a JSON array of artist references in a single column.
type ArtistRefList []ArtistRef

// Value implements driver.Valuer.
func (l ArtistRefList) Value() (driver.Value, error) {
	if l == nil {
		l = ArtistRefList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ArtistRefList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StringList stores a JSON array of strings (genre lists) in a single column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T for JSON field", src)
	}
}
