package catalog

import (
	"context"
	"fmt"

	"melodex/core/spotify"
	"melodex/logger"
	"melodex/model"
	"melodex/repository"
)

// DefaultPageSize is the page served by every search operation and the unit
// of provider backfill pagination.
const DefaultPageSize = 10

// Service is the fetch-through catalog search service. Queries are served
// from the local store first; shortfalls are backfilled from the provider
// and newly discovered entities are written back asynchronously.
type Service struct {
	tracks   repository.TrackRepository
	albums   repository.AlbumRepository
	artists  repository.ArtistRepository
	provider Provider
	sched    *Scheduler
	pageSize int
}

// NewService creates the catalog service.
func NewService(
	tracks repository.TrackRepository,
	albums repository.AlbumRepository,
	artists repository.ArtistRepository,
	provider Provider,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		tracks:   tracks,
		albums:   albums,
		artists:  artists,
		provider: provider,
		sched:    &Scheduler{},
		pageSize: pageSize,
	}
}

// Flush blocks until all scheduled backfill persistence has finished. Used
// on shutdown and by tests that assert on stored state.
func (s *Service) Flush() {
	s.sched.Wait()
}

// SearchTracks returns a page of tracks whose name contains the filter.
func (s *Service) SearchTracks(ctx context.Context, filter string, skip int) ([]model.Track, error) {
	src := &trackSearchSource{svc: s, query: filter, albums: make(map[string]spotify.Album)}
	return SatisfyPage[model.Track](ctx, src, s.sched, s.pageSize, skip)
}

// TracksByAlbum returns a page of the named album's tracks. The owning album
// is resolved up front (locally, else from the provider) because its art and
// release metadata are denormalized into every track; an album discovered
// missing here is itself persisted with the tracks.
func (s *Service) TracksByAlbum(ctx context.Context, albumRefID string, skip int) ([]model.Track, error) {
	album, err := s.albums.FindByRefID(ctx, albumRefID)
	if err != nil {
		return nil, err
	}

	src := &albumTracksSource{svc: s, albumRefID: albumRefID, album: album}
	if album == nil {
		fetched, err := s.provider.Album(ctx, albumRefID)
		if err != nil {
			return nil, err
		}
		normalized := normalizeAlbum(*fetched)
		src.album = &normalized
		src.albumIsNew = true
	}

	return SatisfyPage[model.Track](ctx, src, s.sched, s.pageSize, skip)
}

// SearchAlbums returns a page of albums whose name contains the filter.
func (s *Service) SearchAlbums(ctx context.Context, filter string, skip int) ([]model.Album, error) {
	src := &albumSearchSource{svc: s, query: filter}
	return SatisfyPage[model.Album](ctx, src, s.sched, s.pageSize, skip)
}

// AlbumsByArtist returns a page of the given artist's albums.
func (s *Service) AlbumsByArtist(ctx context.Context, artistRefID string, skip int) ([]model.Album, error) {
	src := &artistAlbumsSource{svc: s, artistRefID: artistRefID}
	return SatisfyPage[model.Album](ctx, src, s.sched, s.pageSize, skip)
}

// SearchArtists returns a page of artists whose name contains the filter.
func (s *Service) SearchArtists(ctx context.Context, filter string, skip int) ([]model.Artist, error) {
	src := &artistSearchSource{svc: s, query: filter}
	return SatisfyPage[model.Artist](ctx, src, s.sched, s.pageSize, skip)
}

// persistNewArtists upserts full artist records for the given provider ids,
// skipping ones already stored so only the missing ones cost a provider
// lookup. Runs on the persistence path only.
func (s *Service) persistNewArtists(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	stored, err := s.artists.FindByRefIDs(ctx, ids)
	if err != nil {
		return err
	}
	storedSet := make(map[string]bool, len(stored))
	for _, artist := range stored {
		storedSet[artist.Ref()] = true
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if !storedSet[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	full, err := s.provider.Artists(ctx, missing)
	if err != nil {
		return fmt.Errorf("resolve new artists: %w", err)
	}

	artists := make([]model.Artist, 0, len(full))
	for _, artist := range full {
		artists = append(artists, normalizeArtist(artist))
	}
	return s.artists.InsertBatch(ctx, artists)
}

// persistAlbums upserts album records captured alongside track results.
func (s *Service) persistAlbums(ctx context.Context, albums map[string]spotify.Album) error {
	if len(albums) == 0 {
		return nil
	}
	out := make([]model.Album, 0, len(albums))
	for _, album := range albums {
		out = append(out, normalizeAlbum(album))
	}
	return s.albums.InsertBatch(ctx, out)
}

func (s *Service) logSidePersist(kind string, err error) {
	if err != nil {
		logger.Error("side persistence failed",
			logger.String("kind", kind),
			logger.ErrorField(err))
	}
}
