package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// userAgent identifies the client to the puzzle API.
const userAgent = "reverse-rainbow/1.0"

// HTTPNetwork adapts client to the Network function type.
// It performs exactly one GET and reads the whole body; no retries.
func HTTPNetwork(client *http.Client) Network {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, url string) (Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return Response{}, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return Response{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Response{}, fmt.Errorf("reading body: %w", err)
		}
		return Response{StatusCode: resp.StatusCode, Body: body}, nil
	}
}
