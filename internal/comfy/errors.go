package comfy

import (
	"fmt"
	"time"
)

// All five error kinds below are terminal for the current run; nothing is
// retried internally. Each carries enough of the offending response to
// diagnose a failure without re-running the workflow.

// SubmissionError reports a submit response with an absent, empty, or null
// job id.
type SubmissionError struct {
	Body string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission returned no usable prompt id: %s", e.Body)
}

// PollTimeoutError reports that no resolvable status arrived within the poll
// timeout. LastBody is the most recent history response observed.
type PollTimeoutError struct {
	Timeout  time.Duration
	LastBody string
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("no result within %s, last status response: %s", e.Timeout, e.LastBody)
}

// ResolutionError reports a 200 history response that names no image. This is
// a definitive negative result, not a transient state.
type ResolutionError struct {
	Body string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("job finished without an image artifact: %s", e.Body)
}

// ArtifactUnavailableError reports a probe whose declared content length was
// missing, non-numeric, or zero: the artifact is named in the job result but
// does not exist server-side.
type ArtifactUnavailableError struct {
	URL    string
	Length string
}

func (e *ArtifactUnavailableError) Error() string {
	return fmt.Sprintf("artifact not available at %s (content length %q)", e.URL, e.Length)
}

// DownloadIntegrityError reports a destination file that was missing or empty
// after the fetch completed. The partial file has been removed.
type DownloadIntegrityError struct {
	Path string
}

func (e *DownloadIntegrityError) Error() string {
	return fmt.Sprintf("downloaded artifact %s is missing or empty", e.Path)
}
