package comfy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const historyWithImage = `{"abc123":{"outputs":{"9":{"images":[{"filename":"out.png","subfolder":"","type":"output"}]}}}}`

func newHistoryServer(handler gin.HandlerFunc) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/history/:id", handler)
	return httptest.NewServer(r)
}

// TestWaitForResultAfterRetries checks the waiting → done transition: the
// first two ticks see a non-200 status, the third resolves.
func TestWaitForResultAfterRetries(t *testing.T) {
	polls := 0
	srv := newHistoryServer(func(c *gin.Context) {
		polls++
		if polls < 3 {
			c.Status(http.StatusAccepted)
			return
		}
		c.Data(http.StatusOK, "application/json", []byte(historyWithImage))
	})
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, 10*time.Millisecond)
	ref, err := client.WaitForResult(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if ref.Filename != "out.png" {
		t.Errorf("expected filename out.png, got %q", ref.Filename)
	}
	if polls != 3 {
		t.Errorf("expected exactly 3 ticks, got %d", polls)
	}
}

// TestWaitForResultTimeout checks the timeout terminal and that at least the
// full timeout elapses before failure.
func TestWaitForResultTimeout(t *testing.T) {
	srv := newHistoryServer(func(c *gin.Context) {
		c.String(http.StatusAccepted, "still pending")
	})
	defer srv.Close()

	timeout := 60 * time.Millisecond
	client := NewClient(srv.URL, timeout, 20*time.Millisecond)

	start := time.Now()
	_, err := client.WaitForResult(context.Background(), "abc123")
	elapsed := time.Since(start)

	var toErr *PollTimeoutError
	if !errors.As(err, &toErr) {
		t.Fatalf("expected PollTimeoutError, got %v", err)
	}
	if elapsed < timeout {
		t.Errorf("failed after %s, before the %s timeout", elapsed, timeout)
	}
	if toErr.LastBody != "still pending" {
		t.Errorf("last body lost: got %q", toErr.LastBody)
	}
}

// TestWaitForResultNoImage ensures a 200 with no image fails immediately
func TestWaitForResultNoImage(t *testing.T) {
	polls := 0
	body := `{"abc123":{"outputs":{"9":{"images":[]}}}}`
	srv := newHistoryServer(func(c *gin.Context) {
		polls++
		c.Data(http.StatusOK, "application/json", []byte(body))
	})
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, 10*time.Millisecond)
	_, err := client.WaitForResult(context.Background(), "abc123")

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
	if polls != 1 {
		t.Errorf("definitive negative result must not be retried, got %d ticks", polls)
	}
	if resErr.Body != body {
		t.Errorf("response body lost: got %q", resErr.Body)
	}
}

// TestWaitForResultContextCancelled ensures the inter-tick sleep honors ctx
func TestWaitForResultContextCancelled(t *testing.T) {
	srv := newHistoryServer(func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, 10*time.Second, 5*time.Second)
	_, err := client.WaitForResult(ctx, "abc123")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}
