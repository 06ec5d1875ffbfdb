package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

func TestEntityList_UnmarshalJSON(t *testing.T) {
	want := models.EntityList{{Text: "Paris", Label: "location"}}

	tests := []struct {
		name    string
		body    string
		want    models.EntityList
		wantErr bool
	}{
		{"array", `{"entities":[{"text":"Paris","label":"location"}]}`, want, false},
		{"encoded string", `{"entities":"[{\"text\":\"Paris\",\"label\":\"location\"}]"}`, want, false},
		{"empty string", `{"entities":""}`, models.EntityList{}, false},
		{"null", `{"entities":null}`, models.EntityList{}, false},
		{"bad string", `{"entities":"not json"}`, nil, true},
		{"wrong shape", `{"entities":{"text":"Paris"}}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req models.SaveAnnotationRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Entities)
		})
	}
}

func TestEntityList_MarshalNilAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(models.AnnotateResponse{Intent: "Unknown"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"Unknown","entities":[]}`, string(data))
}

func TestEntityList_ValueAndScan(t *testing.T) {
	list := models.EntityList{{Text: "tomorrow", Label: "date"}}

	v, err := list.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"tomorrow","label":"date"}]`, v.(string))

	var scanned models.EntityList
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, list, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestDecodeEntityListForm(t *testing.T) {
	got, err := models.DecodeEntityListForm([]string{`[{"text":"Rome","label":"location"}]`})
	require.NoError(t, err)
	assert.Equal(t, models.EntityList{{Text: "Rome", Label: "location"}}, got)

	got, err = models.DecodeEntityListForm(nil)
	require.NoError(t, err)
	assert.Equal(t, models.EntityList{}, got)

	_, err = models.DecodeEntityListForm([]string{"{"})
	assert.True(t, utils.IsValidationError(err))
}

func TestSaveAnnotationRequest_ToAnnotation(t *testing.T) {
	t.Run("bot variant", func(t *testing.T) {
		req := models.SaveAnnotationRequest{BotID: 3, Sentence: "book a flight", Intent: " book_flight "}
		a := req.ToAnnotation()

		require.NotNil(t, a.BotID)
		assert.Equal(t, int64(3), *a.BotID)
		assert.Nil(t, a.WorkspaceName)
		assert.Equal(t, "book a flight", a.Sentence)
		assert.Equal(t, "book_flight", a.Intent)
		assert.NotNil(t, a.Entities)
	})

	t.Run("workspace variant", func(t *testing.T) {
		req := models.SaveAnnotationRequest{WorkspaceName: "travel", Text: "weather in Oslo", Intent: "check_weather"}
		a := req.ToAnnotation()

		assert.Nil(t, a.BotID)
		require.NotNil(t, a.WorkspaceName)
		assert.Equal(t, "travel", *a.WorkspaceName)
		assert.Equal(t, "weather in Oslo", a.Sentence)
	})
}

func TestAnnotationValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SaveAnnotationRequest
		wantErr bool
	}{
		{"bot tag", models.SaveAnnotationRequest{BotID: 2, Sentence: "hi"}, false},
		{"workspace tag", models.SaveAnnotationRequest{WorkspaceName: "ws", Text: "hi"}, false},
		{"negative bot id dropped", models.SaveAnnotationRequest{BotID: -1, Sentence: "hi"}, true},
		{"blank workspace dropped", models.SaveAnnotationRequest{WorkspaceName: "  ", Sentence: "hi"}, true},
		{"blank sentence", models.SaveAnnotationRequest{BotID: 2, Sentence: "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.ToAnnotation().Validate()
			if tt.wantErr {
				assert.True(t, utils.IsValidationError(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAnnotationRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SaveAnnotationRequest
		wantErr bool
	}{
		{"bot and sentence", models.SaveAnnotationRequest{BotID: 1, Sentence: "hi", Intent: "greet"}, false},
		{"workspace and text", models.SaveAnnotationRequest{WorkspaceName: "ws", Text: "hi", Intent: "greet"}, false},
		{"no target", models.SaveAnnotationRequest{Sentence: "hi", Intent: "greet"}, true},
		{"no sentence", models.SaveAnnotationRequest{BotID: 1, Intent: "greet"}, true},
		{"no intent", models.SaveAnnotationRequest{BotID: 1, Sentence: "hi"}, true},
		{"negative bot id", models.SaveAnnotationRequest{BotID: -1, Sentence: "hi", Intent: "greet"}, true},
		{"blank workspace", models.SaveAnnotationRequest{WorkspaceName: "   ", Text: "hi", Intent: "greet"}, true},
		{"blank sentence", models.SaveAnnotationRequest{BotID: 1, Sentence: "   ", Intent: "greet"}, true},
		{"blank text", models.SaveAnnotationRequest{WorkspaceName: "ws", Text: " ", Intent: "greet"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateStruct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
