package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// AnnotationRepository appends and lists labelled sentences. Annotations are never updated.
type AnnotationRepository interface {
	Create(ctx context.Context, annotation *models.Annotation) error
	ListByBotID(ctx context.Context, botID int64) ([]*models.Annotation, error)
}

// SQLAnnotationRepository is the database/sql implementation of AnnotationRepository.
type SQLAnnotationRepository struct {
	db *database.Pool
}

// NewAnnotationRepository creates a new AnnotationRepository.
func NewAnnotationRepository(db *database.Pool) AnnotationRepository {
	return &SQLAnnotationRepository{
		db: db,
	}
}

// Create inserts one annotation. Entities are stored as a JSON array.
func (r *SQLAnnotationRepository) Create(ctx context.Context, annotation *models.Annotation) error {
	startTime := time.Now()

	if annotation.Entities == nil {
		annotation.Entities = models.EntityList{}
	}
	annotation.CreatedAt = now()

	query := `
		INSERT INTO annotations (bot_id, workspace_name, sentence, intent, entities, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	args := []interface{}{
		nullableInt64(annotation.BotID),
		nullableString(annotation.WorkspaceName),
		annotation.Sentence,
		annotation.Intent,
		annotation.Entities,
		annotation.CreatedAt,
	}

	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), args...).Scan(&annotation.ID)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create annotation: %w", err)
	}

	log.Info().
		Int64("annotation_id", annotation.ID).
		Str("intent", annotation.Intent).
		Int("entities", len(annotation.Entities)).
		Msg("Annotation saved")

	return nil
}

// ListByBotID returns the annotations of a bot in insertion order.
func (r *SQLAnnotationRepository) ListByBotID(ctx context.Context, botID int64) ([]*models.Annotation, error) {
	startTime := time.Now()

	query := `
		SELECT id, bot_id, workspace_name, sentence, intent, entities, created_at
		FROM annotations
		WHERE bot_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), botID)

	utils.LogDBQuery(query, []interface{}{botID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer closeRows(rows)

	annotations := []*models.Annotation{}
	for rows.Next() {
		var (
			a         models.Annotation
			botIDCol  sql.NullInt64
			workspace sql.NullString
		)
		if err := rows.Scan(&a.ID, &botIDCol, &workspace, &a.Sentence, &a.Intent, &a.Entities, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		if botIDCol.Valid {
			id := botIDCol.Int64
			a.BotID = &id
		}
		if workspace.Valid {
			ws := workspace.String
			a.WorkspaceName = &ws
		}
		annotations = append(annotations, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annotations: %w", err)
	}

	return annotations, nil
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
