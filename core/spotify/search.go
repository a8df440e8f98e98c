package spotify

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Search runs a catalog search. kinds selects which entity types the
// provider should match; offset/limit page through each kind's results.
// A page holding fewer items than limit is the provider's last page for
// that query; there is no explicit has-more flag.
func (c *Client) Search(ctx context.Context, query string, kinds []string, offset, limit int) (*SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", strings.Join(kinds, ","))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var result SearchResult
	if err := c.get(ctx, "/search", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
