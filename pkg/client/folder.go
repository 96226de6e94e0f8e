package client

import (
	"context"
	"net/http"

	"github.com/bornholm/darkroom/internal/http/handler/api"
	"github.com/pkg/errors"
)

// DeleteFolder asks the server to delete every asset stored under the given folder
func (c *Client) DeleteFolder(ctx context.Context, folder string) (*api.DeleteFolderResponse, error) {
	var res api.DeleteFolderResponse

	if err := c.jsonRequest(ctx, http.MethodPost, "/cloudinary/delete-folder", api.DeleteFolderRequest{Folder: folder}, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}
