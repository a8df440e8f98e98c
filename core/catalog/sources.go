package catalog

import (
	"context"

	"melodex/core/spotify"
	"melodex/model"
	"melodex/repository"
)

// Per-kind PageSource implementations. Each fixes the local filter shape,
// the provider query, and the enrichment/side-persistence that kind needs.

// trackSearchSource: tracks by name. Captures the albums and artist ids
// embedded in provider results so persistence can backfill those
// collections too, the way a track discovery also discovers its album and
// artists.
type trackSearchSource struct {
	svc       *Service
	query     string
	albums    map[string]spotify.Album
	artistIDs []string
	artistSet map[string]bool
}

func (src *trackSearchSource) Local(ctx context.Context, limit, skip int) ([]model.Track, error) {
	return src.svc.tracks.Search(ctx, repository.TrackQuery{
		NameLike: src.query,
		Limit:    limit,
		Skip:     skip,
	})
}

func (src *trackSearchSource) FetchPage(ctx context.Context, offset, limit int) ([]model.Track, error) {
	result, err := src.svc.provider.Search(ctx, "track:"+src.query, []string{spotify.KindTrack}, offset, limit)
	if err != nil {
		return nil, err
	}

	var items []spotify.Track
	if result.Tracks != nil {
		items = result.Tracks.Items
	}

	for _, item := range items {
		if item.Album != nil {
			src.albums[item.Album.ID] = *item.Album
		}
		src.recordArtists(item.Artists)
	}

	return src.svc.normalizeTracks(ctx, items, nil)
}

func (src *trackSearchSource) recordArtists(stubs []spotify.ArtistStub) {
	if src.artistSet == nil {
		src.artistSet = make(map[string]bool)
	}
	for _, stub := range stubs {
		if stub.ID != "" && !src.artistSet[stub.ID] {
			src.artistSet[stub.ID] = true
			src.artistIDs = append(src.artistIDs, stub.ID)
		}
	}
}

func (src *trackSearchSource) StoredRefIDs(ctx context.Context, refIDs []string) (map[string]bool, error) {
	stored, err := src.svc.tracks.FindByRefIDs(ctx, refIDs)
	if err != nil {
		return nil, err
	}
	return trackRefSet(stored), nil
}

func (src *trackSearchSource) Persist(ctx context.Context, items []model.Track) error {
	if err := src.svc.tracks.InsertBatch(ctx, items); err != nil {
		return err
	}
	src.svc.logSidePersist("album", src.svc.persistAlbums(ctx, src.albums))
	src.svc.logSidePersist("artist", src.svc.persistNewArtists(ctx, src.artistIDs))
	return nil
}

// albumTracksSource: tracks of one album. The owning album is resolved by
// the service before the page loop starts.
type albumTracksSource struct {
	svc        *Service
	albumRefID string
	album      *model.Album
	albumIsNew bool
	artistIDs  []string
	artistSet  map[string]bool
}

func (src *albumTracksSource) Local(ctx context.Context, limit, skip int) ([]model.Track, error) {
	return src.svc.tracks.Search(ctx, repository.TrackQuery{
		AlbumRefID: src.albumRefID,
		Limit:      limit,
		Skip:       skip,
	})
}

func (src *albumTracksSource) FetchPage(ctx context.Context, offset, limit int) ([]model.Track, error) {
	page, err := src.svc.provider.AlbumTracks(ctx, src.albumRefID, offset, limit)
	if err != nil {
		return nil, err
	}

	for _, item := range page.Items {
		src.recordArtists(item.Artists)
	}

	return src.svc.normalizeTracks(ctx, page.Items, src.album)
}

func (src *albumTracksSource) recordArtists(stubs []spotify.ArtistStub) {
	if src.artistSet == nil {
		src.artistSet = make(map[string]bool)
	}
	for _, stub := range stubs {
		if stub.ID != "" && !src.artistSet[stub.ID] {
			src.artistSet[stub.ID] = true
			src.artistIDs = append(src.artistIDs, stub.ID)
		}
	}
}

func (src *albumTracksSource) StoredRefIDs(ctx context.Context, refIDs []string) (map[string]bool, error) {
	stored, err := src.svc.tracks.FindByRefIDs(ctx, refIDs)
	if err != nil {
		return nil, err
	}
	return trackRefSet(stored), nil
}

func (src *albumTracksSource) Persist(ctx context.Context, items []model.Track) error {
	if err := src.svc.tracks.InsertBatch(ctx, items); err != nil {
		return err
	}
	if src.albumIsNew && src.album != nil {
		src.svc.logSidePersist("album", src.svc.albums.InsertBatch(ctx, []model.Album{*src.album}))
	}
	src.svc.logSidePersist("artist", src.svc.persistNewArtists(ctx, src.artistIDs))
	return nil
}

// albumSearchSource: albums by name.
type albumSearchSource struct {
	svc       *Service
	query     string
	artistIDs []string
	artistSet map[string]bool
}

func (src *albumSearchSource) Local(ctx context.Context, limit, skip int) ([]model.Album, error) {
	return src.svc.albums.Search(ctx, repository.AlbumQuery{
		NameLike: src.query,
		Limit:    limit,
		Skip:     skip,
	})
}

func (src *albumSearchSource) FetchPage(ctx context.Context, offset, limit int) ([]model.Album, error) {
	result, err := src.svc.provider.Search(ctx, "album:"+src.query, []string{spotify.KindAlbum}, offset, limit)
	if err != nil {
		return nil, err
	}

	var items []spotify.Album
	if result.Albums != nil {
		items = result.Albums.Items
	}

	albums := make([]model.Album, 0, len(items))
	for _, item := range items {
		if src.artistSet == nil {
			src.artistSet = make(map[string]bool)
		}
		for _, stub := range item.Artists {
			if stub.ID != "" && !src.artistSet[stub.ID] {
				src.artistSet[stub.ID] = true
				src.artistIDs = append(src.artistIDs, stub.ID)
			}
		}
		albums = append(albums, normalizeAlbum(item))
	}
	return albums, nil
}

func (src *albumSearchSource) StoredRefIDs(ctx context.Context, refIDs []string) (map[string]bool, error) {
	stored, err := src.svc.albums.FindByRefIDs(ctx, refIDs)
	if err != nil {
		return nil, err
	}
	return albumRefSet(stored), nil
}

func (src *albumSearchSource) Persist(ctx context.Context, items []model.Album) error {
	if err := src.svc.albums.InsertBatch(ctx, items); err != nil {
		return err
	}
	src.svc.logSidePersist("artist", src.svc.persistNewArtists(ctx, src.artistIDs))
	return nil
}

// artistAlbumsSource: albums of one artist.
type artistAlbumsSource struct {
	svc         *Service
	artistRefID string
}

func (src *artistAlbumsSource) Local(ctx context.Context, limit, skip int) ([]model.Album, error) {
	return src.svc.albums.Search(ctx, repository.AlbumQuery{
		ArtistRefID: src.artistRefID,
		Limit:       limit,
		Skip:        skip,
	})
}

func (src *artistAlbumsSource) FetchPage(ctx context.Context, offset, limit int) ([]model.Album, error) {
	page, err := src.svc.provider.AlbumsByArtist(ctx, src.artistRefID, offset, limit)
	if err != nil {
		return nil, err
	}

	albums := make([]model.Album, 0, len(page.Items))
	for _, item := range page.Items {
		albums = append(albums, normalizeAlbum(item))
	}
	return albums, nil
}

func (src *artistAlbumsSource) StoredRefIDs(ctx context.Context, refIDs []string) (map[string]bool, error) {
	stored, err := src.svc.albums.FindByRefIDs(ctx, refIDs)
	if err != nil {
		return nil, err
	}
	return albumRefSet(stored), nil
}

func (src *artistAlbumsSource) Persist(ctx context.Context, items []model.Album) error {
	return src.svc.albums.InsertBatch(ctx, items)
}

// artistSearchSource: artists by name. Search results carry full artist
// objects, so no secondary enrichment is needed.
type artistSearchSource struct {
	svc   *Service
	query string
}

func (src *artistSearchSource) Local(ctx context.Context, limit, skip int) ([]model.Artist, error) {
	return src.svc.artists.Search(ctx, repository.ArtistQuery{
		NameLike: src.query,
		Limit:    limit,
		Skip:     skip,
	})
}

func (src *artistSearchSource) FetchPage(ctx context.Context, offset, limit int) ([]model.Artist, error) {
	result, err := src.svc.provider.Search(ctx, "artist:"+src.query, []string{spotify.KindArtist}, offset, limit)
	if err != nil {
		return nil, err
	}

	var items []spotify.Artist
	if result.Artists != nil {
		items = result.Artists.Items
	}

	artists := make([]model.Artist, 0, len(items))
	for _, item := range items {
		artists = append(artists, normalizeArtist(item))
	}
	return artists, nil
}

func (src *artistSearchSource) StoredRefIDs(ctx context.Context, refIDs []string) (map[string]bool, error) {
	stored, err := src.svc.artists.FindByRefIDs(ctx, refIDs)
	if err != nil {
		return nil, err
	}
	return artistRefSet(stored), nil
}

func (src *artistSearchSource) Persist(ctx context.Context, items []model.Artist) error {
	return src.svc.artists.InsertBatch(ctx, items)
}

func trackRefSet(tracks []model.Track) map[string]bool {
	set := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		if ref := t.Ref(); ref != "" {
			set[ref] = true
		}
	}
	return set
}

func albumRefSet(albums []model.Album) map[string]bool {
	set := make(map[string]bool, len(albums))
	for _, a := range albums {
		if ref := a.Ref(); ref != "" {
			set[ref] = true
		}
	}
	return set
}

func artistRefSet(artists []model.Artist) map[string]bool {
	set := make(map[string]bool, len(artists))
	for _, a := range artists {
		if ref := a.Ref(); ref != "" {
			set[ref] = true
		}
	}
	return set
}
