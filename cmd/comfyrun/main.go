package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vkotlyar/comfyrun/internal/config"
	"github.com/vkotlyar/comfyrun/internal/output"
	"github.com/vkotlyar/comfyrun/internal/runner"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <workflow.json>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	workflowPath := os.Args[1]

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if retention := cfg.Retention(); retention > 0 {
		output.CleanOldArtifacts(cfg.Output.Dir, retention, log.Default())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := runner.New(cfg, log.Default()).Run(ctx, workflowPath)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	info, err := os.Stat(run.Artifact.Path)
	if err != nil || info.Size() == 0 {
		log.Fatalf("artifact missing after download: %s", run.Artifact.Path)
	}

	fmt.Println(run.Artifact.Path)
}
