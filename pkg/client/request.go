package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bornholm/darkroom/internal/http/handler/api"
	"github.com/pkg/errors"
)

// Error is returned when the server answers with an error status
type Error struct {
	StatusCode int
	Message    string
	// DeletedCount is set when the server reports a partial deletion
	DeletedCount *int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected response code %d (%s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("unexpected response code %d: %s", e.StatusCode, e.Message)
}

func (c *Client) request(ctx context.Context, method string, path string, body io.Reader, result io.Writer) error {
	url := c.baseURL.JoinPath(path)
	url.User = nil

	slogAttrs := []any{
		slog.String("method", method),
		slog.String("path", url.Path),
		slog.String("host", url.Host),
	}
	if c.baseURL.User != nil {
		slogAttrs = append(slogAttrs, slog.String("username", c.baseURL.User.Username()))
	}

	slog.DebugContext(ctx, "new client request", slogAttrs...)

	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return errors.WithStack(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.baseURL.User != nil {
		password, _ := c.baseURL.User.Password()
		req.SetBasicAuth(c.baseURL.User.Username(), password)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		return errors.WithStack(readError(res))
	}

	if _, err := io.Copy(result, res.Body); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, payload any, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(data)
	}

	var buff bytes.Buffer

	if err := c.request(ctx, method, path, body, &buff); err != nil {
		return errors.WithStack(err)
	}

	if err := json.Unmarshal(buff.Bytes(), result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func readError(res *http.Response) *Error {
	apiErr := &Error{
		StatusCode: res.StatusCode,
	}

	var payload api.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Error
		apiErr.DeletedCount = payload.DeletedCount
	}

	return apiErr
}
