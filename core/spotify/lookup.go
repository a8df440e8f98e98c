package spotify

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Artist fetches one artist by provider id.
func (c *Client) Artist(ctx context.Context, id string) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, "/artists/"+id, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// Artists fetches a batch of artists in a single call. The batch form is the
// only one the enrichment path uses; one call covers all contributing
// artists of a track page.
func (c *Client) Artists(ctx context.Context, ids []string) ([]Artist, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))

	var body struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, "/artists", q, &body); err != nil {
		return nil, err
	}
	return body.Artists, nil
}

// Album fetches one album by provider id.
func (c *Client) Album(ctx context.Context, id string) (*Album, error) {
	var album Album
	if err := c.get(ctx, "/albums/"+id, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Albums fetches a batch of albums in a single call.
func (c *Client) Albums(ctx context.Context, ids []string) ([]Album, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))

	var body struct {
		Albums []Album `json:"albums"`
	}
	if err := c.get(ctx, "/albums", q, &body); err != nil {
		return nil, err
	}
	return body.Albums, nil
}

// Track fetches one track by provider id.
func (c *Client) Track(ctx context.Context, id string) (*Track, error) {
	var track Track
	if err := c.get(ctx, "/tracks/"+id, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Tracks fetches a batch of tracks in a single call.
func (c *Client) Tracks(ctx context.Context, ids []string) ([]Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))

	var body struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, "/tracks", q, &body); err != nil {
		return nil, err
	}
	return body.Tracks, nil
}

// AlbumsByArtist pages through an artist's album catalog.
func (c *Client) AlbumsByArtist(ctx context.Context, artistID string, offset, limit int) (*AlbumPage, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page AlbumPage
	if err := c.get(ctx, "/artists/"+artistID+"/albums", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AlbumTracks pages through an album's track listing. Items carry no album
// object and no popularity; callers supply album context separately.
func (c *Client) AlbumTracks(ctx context.Context, albumID string, offset, limit int) (*TrackPage, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page TrackPage
	if err := c.get(ctx, "/albums/"+albumID+"/tracks", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
