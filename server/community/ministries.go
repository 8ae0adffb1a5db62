package community

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListMinistries(ctx context.Context) ([]Ministry, error) {
	var ministries []Ministry
	if err := c.Do(ctx, http.MethodGet, "/ministry", nil, &ministries); err != nil {
		return nil, err
	}
	return ministries, nil
}

func (c *Client) ListCells(ctx context.Context, ministryID string) ([]Cell, error) {
	var cells []Cell
	if err := c.Do(ctx, http.MethodGet, "/ministry/"+url.PathEscape(ministryID)+"/cells", nil, &cells); err != nil {
		return nil, err
	}
	return cells, nil
}
