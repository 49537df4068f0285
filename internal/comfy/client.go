// Package comfy is an HTTP client for a ComfyUI-compatible workflow service:
// submit a workflow, poll its history entry until an image appears, download
// the image.
package comfy

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("comfy-client")

const (
	DefaultPollTimeout  = 300 * time.Second
	DefaultPollInterval = 5 * time.Second
)

// Client talks to one service instance. A zero pollTimeout or pollInterval
// selects the defaults.
type Client struct {
	baseURL      string
	pollTimeout  time.Duration
	pollInterval time.Duration
	httpClient   *http.Client
}

func NewClient(baseURL string, pollTimeout, pollInterval time.Duration) *Client {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		pollTimeout:  pollTimeout,
		pollInterval: pollInterval,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
