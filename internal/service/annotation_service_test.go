package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/nlp"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

func (f *datasetFixture) annotationService(recognizer nlp.EntityRecognizer) (*AnnotationService, *MockAnnotationRepository) {
	repo := NewMockAnnotationRepository()
	return NewAnnotationService(repo, f.datasets, f.store, f.cache, recognizer, nil), repo
}

func cityRecognizer() nlp.EntityRecognizer {
	return nlp.RecognizerFunc(func(_ context.Context, text string) ([]models.EntitySpan, error) {
		return []models.EntitySpan{{Text: "Paris", Label: "location"}}, nil
	})
}

func TestAnnotationService_Annotate(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "travel.csv", "question,answer\nbook a flight,ok\ncheck the weather,sunny\n")
	svc, _ := f.annotationService(cityRecognizer())

	resp, err := svc.Annotate(context.Background(), "book flight to Paris", id)
	require.NoError(t, err)

	assert.Equal(t, "book a flight", resp.Intent)
	assert.Equal(t, models.EntityList{{Text: "Paris", Label: "location"}}, resp.Entities)
	assert.Equal(t, "book_flight", resp.SuggestedIntent)
}

func TestAnnotationService_Annotate_NoMatch(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "travel.csv", "question\nbook a flight\ncheck the weather\n")
	svc, _ := f.annotationService(nil)

	for _, sentence := range []string{"xyz qqq", "", "   "} {
		resp, err := svc.Annotate(context.Background(), sentence, id)
		require.NoError(t, err)
		assert.Equal(t, constants.UnknownIntent, resp.Intent, "sentence %q", sentence)
		assert.NotNil(t, resp.Entities)
		assert.Empty(t, resp.Entities)
		assert.Empty(t, resp.SuggestedIntent)
	}
}

func TestAnnotationService_Annotate_SentenceColumn(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "s.csv", "Sentence,intent\nwhere can I eat\nfind a table\n")
	svc, _ := f.annotationService(nil)

	resp, err := svc.Annotate(context.Background(), "Eat now", id)
	require.NoError(t, err)
	assert.Equal(t, "where can I eat", resp.Intent)
	assert.Equal(t, "find_restaurant", resp.SuggestedIntent)
}

func TestAnnotationService_Annotate_JSONDataset(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "faq.json", `[{"question":"reset my password"},{"question":"open an account"}]`)
	svc, _ := f.annotationService(nil)

	resp, err := svc.Annotate(context.Background(), "how to open", id)
	require.NoError(t, err)
	assert.Equal(t, "open an account", resp.Intent)
}

func TestAnnotationService_Annotate_Errors(t *testing.T) {
	f := newDatasetFixture(t)
	svc, _ := f.annotationService(nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		setup      func() int64
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "no dataset row",
			setup:      func() int64 { return 404 },
			wantStatus: http.StatusNotFound,
			wantMsg:    constants.MsgDatasetNotFoundForBot,
		},
		{
			name: "file removed",
			setup: func() int64 {
				id := f.createBot(t, "removed.csv", "question\nhi\n")
				require.NoError(t, os.Remove(filepath.Join(f.store.Dir(), "removed.csv")))
				return id
			},
			wantStatus: http.StatusNotFound,
			wantMsg:    constants.MsgDatasetFileMissing,
		},
		{
			name:       "header only",
			setup:      func() int64 { return f.createBot(t, "empty.csv", "question\n") },
			wantStatus: http.StatusBadRequest,
			wantMsg:    constants.MsgEmptyDataset,
		},
		{
			name:       "empty file",
			setup:      func() int64 { return f.createBot(t, "zero.csv", "") },
			wantStatus: http.StatusBadRequest,
			wantMsg:    constants.MsgCouldNotReadCSV,
		},
		{
			name:       "no text column",
			setup:      func() int64 { return f.createBot(t, "cols.csv", "prompt,answer\nhi,hello\n") },
			wantStatus: http.StatusBadRequest,
			wantMsg:    constants.MsgMissingTextColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Annotate(ctx, "hello", tt.setup())
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, utils.StatusCode(err))

			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestAnnotationService_Annotate_RecognizerFailure(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "travel.csv", "question\nbook a flight\n")
	failing := nlp.RecognizerFunc(func(context.Context, string) ([]models.EntitySpan, error) {
		return nil, errors.New("model not loaded")
	})
	svc, _ := f.annotationService(failing)

	_, err := svc.Annotate(context.Background(), "book", id)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, utils.StatusCode(err))
	assert.Equal(t, constants.MsgAnnotationFailed+": model not loaded", err.Error())
}

func TestAnnotationService_CustomMatcher(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "travel.csv", "question\nbook a flight\n")

	var seen []string
	matcher := nlp.IntentMatcherFunc(func(sentence string, candidates []string) string {
		seen = candidates
		return "classified"
	})
	svc := NewAnnotationService(NewMockAnnotationRepository(), f.datasets, f.store, f.cache, nil, matcher)

	resp, err := svc.Annotate(context.Background(), "anything", id)
	require.NoError(t, err)
	assert.Equal(t, "classified", resp.Intent)
	assert.Equal(t, []string{"book a flight"}, seen)
}

func TestAnnotationService_SaveAndList(t *testing.T) {
	f := newDatasetFixture(t)
	svc, repo := f.annotationService(nil)
	ctx := context.Background()

	req := &models.SaveAnnotationRequest{
		BotID:    7,
		Sentence: "book a flight to Oslo",
		Intent:   "book_flight",
		Entities: models.EntityList{{Text: "Oslo", Label: "location"}},
	}

	first, err := svc.SaveAnnotation(ctx, req)
	require.NoError(t, err)
	second, err := svc.SaveAnnotation(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "duplicates accumulate")

	_, err = svc.SaveAnnotation(ctx, &models.SaveAnnotationRequest{WorkspaceName: "travel", Text: "rain tomorrow", Intent: "check_weather"})
	require.NoError(t, err)
	assert.Len(t, repo.annotations, 3)

	_, err = svc.SaveAnnotation(ctx, &models.SaveAnnotationRequest{BotID: -1, Sentence: "hi", Intent: "greet"})
	assert.True(t, utils.IsValidationError(err))
	_, err = svc.SaveAnnotation(ctx, &models.SaveAnnotationRequest{BotID: 7, Sentence: "   ", Intent: "greet"})
	assert.True(t, utils.IsValidationError(err))
	assert.Len(t, repo.annotations, 3, "rejected annotations are not stored")

	list, err := svc.ListAnnotations(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, models.EntityList{{Text: "Oslo", Label: "location"}}, list[0].Entities)

	list, err = svc.ListAnnotations(ctx, 8)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
