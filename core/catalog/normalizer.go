package catalog

import (
	"context"
	"errors"
	"fmt"

	"melodex/core/spotify"
	"melodex/logger"
	"melodex/model"
)

// ErrEnrichmentFailed means a secondary provider lookup needed to complete
// normalization failed; the affected items are not persisted or returned.
var ErrEnrichmentFailed = errors.New("enrichment failed")

func logPersistFailure(count int, err error) {
	logger.Error("backfill persistence failed",
		logger.Int("items", count),
		logger.ErrorField(err))
}

// Provider is the slice of the Spotify client the catalog service consumes.
type Provider interface {
	Search(ctx context.Context, query string, kinds []string, offset, limit int) (*spotify.SearchResult, error)
	Artists(ctx context.Context, ids []string) ([]spotify.Artist, error)
	Album(ctx context.Context, id string) (*spotify.Album, error)
	AlbumsByArtist(ctx context.Context, artistID string, offset, limit int) (*spotify.AlbumPage, error)
	AlbumTracks(ctx context.Context, albumID string, offset, limit int) (*spotify.TrackPage, error)
}

// normalizeArtist maps a provider artist to the local shape.
func normalizeArtist(a spotify.Artist) model.Artist {
	refID := a.ID
	return model.Artist{
		RefID:      &refID,
		Name:       a.Name,
		Genres:     model.StringList(a.Genres),
		Images:     normalizeImages(a.Images),
		Popularity: a.Popularity,
	}
}

// normalizeAlbum maps a provider album to the local shape.
func normalizeAlbum(a spotify.Album) model.Album {
	refID := a.ID
	return model.Album{
		RefID:       &refID,
		Name:        a.Name,
		ReleaseDate: a.ReleaseDate,
		CoverImages: normalizeImages(a.Images),
		Artists:     normalizeArtistStubs(a.Artists),
		TotalTracks: a.TotalTracks,
		Popularity:  a.Popularity,
		Type:        model.TypeAlbum,
	}
}

// normalizeTracks maps a batch of provider tracks to local shapes. Each
// track's genre list is the union of its contributing artists' genres,
// resolved with a single batched artist lookup covering the whole page.
// albumCtx supplies art and release metadata for tracks that do not embed
// their album (album-track listings); tracks that do embed one use it.
func (s *Service) normalizeTracks(ctx context.Context, items []spotify.Track, albumCtx *model.Album) ([]model.Track, error) {
	genres, err := s.genresByArtist(ctx, items)
	if err != nil {
		return nil, err
	}

	tracks := make([]model.Track, 0, len(items))
	for _, item := range items {
		refID := item.ID
		track := model.Track{
			RefID:       &refID,
			Name:        item.Name,
			URL:         item.PreviewURL,
			DiscNumber:  item.DiscNumber,
			TrackNumber: item.TrackNumber,
			DurationMS:  item.DurationMS,
			Artists:     normalizeArtistStubs(item.Artists),
			Genres:      genreUnion(item.Artists, genres),
			Popularity:  item.Popularity,
			Explicit:    item.Explicit,
			Type:        model.TypeSong,
		}

		switch {
		case item.Album != nil:
			track.AlbumName = item.Album.Name
			track.AlbumRefID = item.Album.ID
			track.CoverImages = normalizeImages(item.Album.Images)
			track.ReleaseDate = item.Album.ReleaseDate
		case albumCtx != nil:
			track.AlbumName = albumCtx.Name
			track.AlbumRefID = albumCtx.Ref()
			track.CoverImages = albumCtx.CoverImages
			track.ReleaseDate = albumCtx.ReleaseDate
		}

		tracks = append(tracks, track)
	}
	return tracks, nil
}

// genresByArtist resolves every contributing artist of the batch in one
// provider call and indexes their genre lists by artist id.
func (s *Service) genresByArtist(ctx context.Context, items []spotify.Track) (map[string][]string, error) {
	idSet := make(map[string]bool)
	ids := make([]string, 0)
	for _, item := range items {
		for _, artist := range item.Artists {
			if artist.ID != "" && !idSet[artist.ID] {
				idSet[artist.ID] = true
				ids = append(ids, artist.ID)
			}
		}
	}
	if len(ids) == 0 {
		return map[string][]string{}, nil
	}

	artists, err := s.provider.Artists(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: artist genres: %w", ErrEnrichmentFailed, err)
	}

	genres := make(map[string][]string, len(artists))
	for _, artist := range artists {
		genres[artist.ID] = artist.Genres
	}
	return genres, nil
}

func genreUnion(stubs []spotify.ArtistStub, genres map[string][]string) model.StringList {
	seen := make(map[string]bool)
	union := make(model.StringList, 0)
	for _, stub := range stubs {
		for _, genre := range genres[stub.ID] {
			if !seen[genre] {
				seen[genre] = true
				union = append(union, genre)
			}
		}
	}
	return union
}

func normalizeImages(images []spotify.Image) model.ImageList {
	out := make(model.ImageList, 0, len(images))
	for _, img := range images {
		out = append(out, model.Image{URL: img.URL, Width: img.Width, Height: img.Height})
	}
	return out
}

func normalizeArtistStubs(stubs []spotify.ArtistStub) model.ArtistRefList {
	out := make(model.ArtistRefList, 0, len(stubs))
	for _, stub := range stubs {
		out = append(out, model.ArtistRef{Name: stub.Name, RefID: stub.ID})
	}
	return out
}
