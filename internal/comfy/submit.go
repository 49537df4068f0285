package comfy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

type submitResponse struct {
	PromptID string `json:"prompt_id"`
}

// SubmitWorkflow posts the workflow document to /prompt and returns the job
// id the service assigned. The payload is sent verbatim; the service performs
// all validation. A submission failure is terminal, there is no retry here.
func (c *Client) SubmitWorkflow(ctx context.Context, payload []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "comfy_submit")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/prompt", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to submit workflow: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read submit response: %w", err)
	}

	var sr submitResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", &SubmissionError{Body: string(body)}
	}
	if sr.PromptID == "" || sr.PromptID == "null" {
		return "", &SubmissionError{Body: string(body)}
	}

	span.SetAttributes(attribute.String("comfy.prompt_id", sr.PromptID))
	return sr.PromptID, nil
}
