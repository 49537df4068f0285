package comfy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vkotlyar/comfyrun/internal/model"
	"go.opentelemetry.io/otel/attribute"
)

// WaitForResult polls /history/{id} at a fixed cadence until the job names an
// image, the poll timeout elapses, or ctx is cancelled. A non-200 status
// means the job is still processing. A 200 response that parses but carries
// no image filename is a definitive negative result and fails immediately.
func (c *Client) WaitForResult(ctx context.Context, promptID string) (model.ImageRef, error) {
	ctx, span := tracer.Start(ctx, "comfy_wait_for_result")
	defer span.End()
	span.SetAttributes(attribute.String("comfy.prompt_id", promptID))

	start := time.Now()
	var lastBody string
	for {
		status, body, err := c.fetchHistory(ctx, promptID)
		if err != nil {
			span.RecordError(err)
			return model.ImageRef{}, err
		}
		lastBody = string(body)

		if status == http.StatusOK {
			ref, ok := resolveImage(body)
			if ok && ref.Filename != "" {
				span.SetAttributes(attribute.String("comfy.filename", ref.Filename))
				return ref, nil
			}
			return model.ImageRef{}, &ResolutionError{Body: lastBody}
		}

		if time.Since(start) >= c.pollTimeout {
			return model.ImageRef{}, &PollTimeoutError{Timeout: c.pollTimeout, LastBody: lastBody}
		}

		select {
		case <-ctx.Done():
			return model.ImageRef{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) fetchHistory(ctx context.Context, promptID string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/history/%s", c.baseURL, promptID), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create history request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read history response: %w", err)
	}
	return resp.StatusCode, body, nil
}
