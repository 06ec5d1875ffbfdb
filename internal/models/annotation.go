package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// EntitySpan is one recognised entity: the surface text and its label.
type EntitySpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityList is an ordered list of entity spans. It is stored as a JSON array
// and accepts either a JSON array or a JSON string holding one on input.
type EntityList []EntitySpan

// MarshalJSON encodes a nil list as an empty array.
func (l EntityList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]EntitySpan(l))
}

// UnmarshalJSON accepts `[{"text":..,"label":..}]`, `"[...]"`, `""` and `null`.
func (l *EntityList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		parsed, err := ParseEntityList(encoded)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	if bytes.Equal(data, []byte("null")) {
		*l = EntityList{}
		return nil
	}

	var spans []EntitySpan
	if err := json.Unmarshal(data, &spans); err != nil {
		return err
	}
	*l = spans
	return nil
}

// ParseEntityList decodes the JSON text of an entity array. Blank input yields an empty list.
func ParseEntityList(raw string) (EntityList, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return EntityList{}, nil
	}

	var spans []EntitySpan
	if err := json.Unmarshal([]byte(raw), &spans); err != nil {
		return nil, utils.NewValidationError("entities", "Must be a JSON array of {text, label} objects")
	}
	if spans == nil {
		spans = []EntitySpan{}
	}
	return spans, nil
}

// DecodeEntityListForm converts a form value into an EntityList.
func DecodeEntityListForm(values []string) (interface{}, error) {
	if len(values) == 0 {
		return EntityList{}, nil
	}
	return ParseEntityList(values[0])
}

// Value stores the list as canonical JSON text.
func (l EntityList) Value() (driver.Value, error) {
	data, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads a JSON array column.
func (l *EntityList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = EntityList{}
		return nil
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into EntityList", src)
	}
}

// Annotation is a labelled sentence. It belongs to a bot, a named workspace, or both.
type Annotation struct {
	ID            int64      `json:"id" db:"id"`
	BotID         *int64     `json:"bot_id,omitempty" db:"bot_id"`
	WorkspaceName *string    `json:"workspace_name,omitempty" db:"workspace_name"`
	Sentence      string     `json:"sentence" db:"sentence"`
	Intent        string     `json:"intent" db:"intent"`
	Entities      EntityList `json:"entities" db:"entities"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the Annotation model.
func (a *Annotation) TableName() string {
	return constants.TableAnnotations
}

// AnnotateRequest asks for intent and entity suggestions for a sentence.
type AnnotateRequest struct {
	Sentence string `json:"sentence" form:"sentence"`
	BotID    int64  `json:"bot_id" form:"bot_id" validate:"required,gt=0"`
}

// AnnotateResponse carries the suggestions for one sentence.
type AnnotateResponse struct {
	Intent          string     `json:"intent"`
	Entities        EntityList `json:"entities"`
	SuggestedIntent string     `json:"suggested_intent,omitempty"`
}

// SaveAnnotationRequest is accepted in two shapes: bot_id with sentence, or
// workspace_name with text.
type SaveAnnotationRequest struct {
	BotID         int64      `json:"bot_id" form:"bot_id" validate:"required_without=WorkspaceName,omitempty,gt=0"`
	WorkspaceName string     `json:"workspace_name" form:"workspace_name" validate:"required_without=BotID,omitempty,notblank,max=100"`
	Sentence      string     `json:"sentence" form:"sentence" validate:"required_without=Text,omitempty,notblank"`
	Text          string     `json:"text" form:"text" validate:"required_without=Sentence,omitempty,notblank"`
	Intent        string     `json:"intent" form:"intent" validate:"required,notblank,max=255"`
	Entities      EntityList `json:"entities" form:"entities"`
}

// ToAnnotation builds the record to store from the request.
func (r *SaveAnnotationRequest) ToAnnotation() *Annotation {
	a := &Annotation{
		Sentence:  utils.FirstNonEmpty(r.Sentence, r.Text),
		Intent:    strings.TrimSpace(r.Intent),
		Entities:  r.Entities,
		CreatedAt: time.Now(),
	}
	if r.BotID > 0 {
		botID := r.BotID
		a.BotID = &botID
	}
	if ws := strings.TrimSpace(r.WorkspaceName); ws != "" {
		a.WorkspaceName = &ws
	}
	if a.Entities == nil {
		a.Entities = EntityList{}
	}
	return a
}

// Validate reports an annotation that has no bot or workspace tag, or no sentence.
func (a *Annotation) Validate() error {
	if a.BotID == nil && a.WorkspaceName == nil {
		return utils.NewValidationError("bot_id", "Either bot_id or workspace_name is required")
	}
	if strings.TrimSpace(a.Sentence) == "" {
		return utils.NewValidationError("sentence", "Either sentence or text is required")
	}
	return nil
}

// SaveAnnotationResponse confirms a stored annotation.
type SaveAnnotationResponse struct {
	Message      string `json:"message"`
	AnnotationID int64  `json:"annotation_id"`
}
