package client

import (
	"context"
	"net/http"

	"github.com/bornholm/darkroom/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) ShareDuplicates(ctx context.Context) (*api.ListShareDuplicatesResponse, error) {
	var res api.ListShareDuplicatesResponse

	if err := c.jsonRequest(ctx, http.MethodGet, "/shares/duplicates", nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}
