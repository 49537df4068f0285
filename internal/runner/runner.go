package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vkotlyar/comfyrun/internal/comfy"
	"github.com/vkotlyar/comfyrun/internal/config"
	"github.com/vkotlyar/comfyrun/internal/model"
)

// Runner drives one workflow through the service: submit, wait for the
// result, download the artifact. Stages run strictly in sequence; the first
// failure aborts the rest.
type Runner struct {
	cfg    *config.Config
	client *comfy.Client
	logger *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		client: comfy.NewClient(cfg.Server.BaseURL, cfg.PollTimeout(), cfg.PollInterval()),
		logger: logger,
	}
}

func (r *Runner) Run(ctx context.Context, workflowPath string) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.New().String(),
		Workflow:  workflowPath,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}

	payload, err := os.ReadFile(workflowPath)
	if err != nil {
		run.Status = model.StatusError
		return run, fmt.Errorf("failed to read workflow %s: %w", workflowPath, err)
	}

	r.logger.Printf("[%s] submitting %s to %s", run.ID, workflowPath, r.cfg.Server.BaseURL)
	jobID, err := r.client.SubmitWorkflow(ctx, payload)
	if err != nil {
		run.Status = model.StatusError
		return run, err
	}
	run.JobID = jobID
	run.Status = model.StatusSubmitted
	r.logger.Printf("[%s] job %s accepted, waiting for result", run.ID, jobID)

	run.Status = model.StatusWaiting
	ref, err := r.client.WaitForResult(ctx, jobID)
	if err != nil {
		run.Status = model.StatusError
		return run, err
	}
	run.Status = model.StatusDownloading
	r.logger.Printf("[%s] job %s produced %s, downloading", run.ID, jobID, ref.Filename)

	artifact, err := r.client.DownloadArtifact(ctx, ref, r.cfg.Output.Dir)
	if err != nil {
		run.Status = model.StatusError
		return run, err
	}
	run.Artifact = &artifact
	run.Status = model.StatusDone
	r.logger.Printf("[%s] saved %s (%d bytes)", run.ID, artifact.Path, artifact.Size)

	return run, nil
}
