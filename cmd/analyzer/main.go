package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/analyzer"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spacesedan/reviewlens/internal/models"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	inputPath := flag.String("input", "", "path to a JSON array of reviews")
	outputPath := flag.String("output", "", "path for the artifact JSON (default stdout)")
	flag.Parse()

	runID := uuid.NewString()
	log := slog.With(slog.String("run_id", runID))

	if *inputPath == "" {
		log.Error("[Main] Missing required -input flag")
		os.Exit(2)
	}

	reviews, err := loadReviews(*inputPath)
	if err != nil {
		log.Error("[Main] Failed to load reviews",
			slog.String("path", *inputPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := analyzer.New(config.EngineOptionsFromEnv())

	artifact, err := engine.Analyze(context.Background(), reviews)
	if err != nil {
		var invalid *analyzer.InvalidInputError
		if errors.As(err, &invalid) {
			log.Error("[Main] Batch rejected", slog.String("error", invalid.Error()))
			os.Exit(2)
		}
		log.Error("[Main] Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := writeArtifact(*outputPath, artifact); err != nil {
		log.Error("[Main] Failed to write artifact",
			slog.String("path", *outputPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("[Main] Artifact written",
		slog.Int("reviews", artifact.TotalReviews),
		slog.String("risk_level", string(artifact.RiskLevel)))
}

func loadReviews(path string) ([]models.Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func writeArtifact(path string, artifact *models.AnalysisArtifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
