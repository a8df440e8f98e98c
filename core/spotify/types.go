package spotify

// Provider-native entity shapes, decoded as delivered by the Web API.

// Image is one rendition of an image.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistStub is the compact artist reference embedded in tracks and albums.
type ArtistStub struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Artist is a full artist object.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Images     []Image  `json:"images"`
	Popularity int      `json:"popularity"`
}

// Album is an album object. Popularity and full track listings only appear
// on by-ID lookups, not inside search results.
type Album struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	ReleaseDate string       `json:"release_date"`
	TotalTracks int          `json:"total_tracks"`
	Images      []Image      `json:"images"`
	Artists     []ArtistStub `json:"artists"`
	Popularity  int          `json:"popularity"`
}

// Track is a track object. Album is absent on album-track listings, present
// on search results.
type Track struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	PreviewURL  string       `json:"preview_url"`
	DurationMS  int          `json:"duration_ms"`
	DiscNumber  int          `json:"disc_number"`
	TrackNumber int          `json:"track_number"`
	Explicit    bool         `json:"explicit"`
	Popularity  int          `json:"popularity"`
	Album       *Album       `json:"album,omitempty"`
	Artists     []ArtistStub `json:"artists"`
}

// TrackPage is one page of track results.
type TrackPage struct {
	Items  []Track `json:"items"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// AlbumPage is one page of album results.
type AlbumPage struct {
	Items  []Album `json:"items"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// ArtistPage is one page of artist results.
type ArtistPage struct {
	Items  []Artist `json:"items"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
	Total  int      `json:"total"`
}

// SearchResult holds the per-kind pages of a search response. Only the kinds
// named in the request are populated.
type SearchResult struct {
	Tracks  *TrackPage  `json:"tracks,omitempty"`
	Albums  *AlbumPage  `json:"albums,omitempty"`
	Artists *ArtistPage `json:"artists,omitempty"`
}

// Search kinds accepted by the provider.
const (
	KindTrack  = "track"
	KindAlbum  = "album"
	KindArtist = "artist"
)
