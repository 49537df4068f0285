package comfy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vkotlyar/comfyrun/internal/model"
	"go.opentelemetry.io/otel/attribute"
)

// DownloadArtifact retrieves ref from the /view endpoint into destDir,
// creating the directory if needed. The probe request confirms the artifact
// exists server-side before any bytes move: a completed history entry can
// name a file that has not been flushed to the service's storage yet, and the
// probe surfaces that race as ArtifactUnavailableError instead of a silently
// empty file. A file that ends up missing or empty on disk is removed; no
// partial artifact persists.
func (c *Client) DownloadArtifact(ctx context.Context, ref model.ImageRef, destDir string) (model.SavedArtifact, error) {
	ctx, span := tracer.Start(ctx, "comfy_download_artifact")
	defer span.End()
	span.SetAttributes(attribute.String("comfy.filename", ref.Filename))

	q := url.Values{}
	q.Set("filename", ref.Filename)
	q.Set("subfolder", ref.Subfolder)
	q.Set("type", ref.Type)
	viewURL := c.baseURL + "/view?" + q.Encode()

	declared, err := c.probeArtifact(ctx, viewURL)
	if err != nil {
		span.RecordError(err)
		return model.SavedArtifact{}, err
	}
	span.SetAttributes(attribute.Int64("comfy.declared_size", declared))

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return model.SavedArtifact{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	dest := filepath.Join(destDir, ref.Filename)

	if err := c.fetchArtifact(ctx, viewURL, dest); err != nil {
		span.RecordError(err)
		return model.SavedArtifact{}, err
	}

	info, err := os.Stat(dest)
	if err != nil || info.Size() == 0 {
		os.Remove(dest)
		return model.SavedArtifact{}, &DownloadIntegrityError{Path: dest}
	}
	return model.SavedArtifact{Path: dest, Size: info.Size()}, nil
}

// probeArtifact reads only the response headers; the body is closed unread.
func (c *Client) probeArtifact(ctx context.Context, viewURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, viewURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to probe artifact: %w", err)
	}
	defer resp.Body.Close()

	raw := resp.Header.Get("Content-Length")
	if resp.StatusCode != http.StatusOK {
		return 0, &ArtifactUnavailableError{URL: viewURL, Length: raw}
	}
	declared, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || declared <= 0 {
		return 0, &ArtifactUnavailableError{URL: viewURL, Length: raw}
	}
	return declared, nil
}

func (c *Client) fetchArtifact(ctx context.Context, viewURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, viewURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create fetch request: %w", err)
	}

	// Artifacts can be large; give the transfer its own, longer bound.
	fetchClient := &http.Client{Timeout: 60 * time.Second}
	resp, err := fetchClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("artifact fetch returned status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		os.Remove(dest)
		return fmt.Errorf("failed to close %s: %w", dest, closeErr)
	}
	return nil
}
