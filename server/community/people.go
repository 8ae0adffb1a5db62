package community

import (
	"context"
	"net/http"
)

func (c *Client) ListPeople(ctx context.Context) ([]Person, error) {
	var people []Person
	if err := c.Do(ctx, http.MethodGet, "/community/people", nil, &people); err != nil {
		return nil, err
	}
	return people, nil
}
