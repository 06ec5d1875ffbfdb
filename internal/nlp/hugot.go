package nlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
)

// HugotRecognizer runs a token-classification ONNX model in-process.
type HugotRecognizer struct {
	session  *hugot.Session
	pipeline *pipelines.TokenClassificationPipeline

	// inference is serialised
	mu sync.Mutex
}

// PrepareModel downloads modelName into modelDir unless it is already there,
// and returns the local model path.
func PrepareModel(modelName, modelDir, onnxFile string) (string, error) {
	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat model directory: %w", err)
	}

	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	log.Info().Str("model", modelName).Str("dir", modelDir).Msg("Downloading NER model")

	downloadOptions := hugot.NewDownloadOptions()
	downloadOptions.OnnxFilePath = onnxFile
	downloadedPath, err := hugot.DownloadModel(modelName, modelDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}
	return downloadedPath, nil
}

// NewHugotRecognizer loads the configured NER model with hugot's pure Go backend.
func NewHugotRecognizer(cfg *config.NLPSettings) (*HugotRecognizer, error) {
	modelPath, err := PrepareModel(cfg.ModelName, cfg.ModelDir, cfg.ONNXFile)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	pipelineConfig := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	pipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	log.Info().Str("model", cfg.ModelName).Str("path", modelPath).Msg("NER model loaded")

	return &HugotRecognizer{
		session:  session,
		pipeline: pipeline,
	}, nil
}

// Recognize runs the model on text and returns the aggregated entities with
// their raw labels.
func (r *HugotRecognizer) Recognize(ctx context.Context, text string) ([]models.EntitySpan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []models.EntitySpan{}, nil
	}

	r.mu.Lock()
	result, err := r.pipeline.RunPipeline([]string{text})
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to run NER: %w", err)
	}

	spans := []models.EntitySpan{}
	if len(result.Entities) == 0 {
		return spans, nil
	}
	for _, entity := range result.Entities[0] {
		spans = append(spans, models.EntitySpan{
			Text:  strings.TrimSpace(entity.Word),
			Label: entity.Entity,
		})
	}
	return spans, nil
}

// Close releases the hugot session.
func (r *HugotRecognizer) Close() error {
	return r.session.Destroy()
}
