package models

import (
	"time"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Dataset points at the uploaded file backing a bot. Filename is relative to
// the upload directory.
type Dataset struct {
	ID            int64     `json:"id" db:"id"`
	BotID         int64     `json:"bot_id" db:"bot_id"`
	Filename      string    `json:"filename" db:"filename"`
	OwnerUsername string    `json:"owner_username" db:"owner_username"`
	UploadedAt    time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// NewDataset creates a dataset record for a stored upload.
func NewDataset(botID int64, filename, owner string) *Dataset {
	return &Dataset{
		BotID:         botID,
		Filename:      filename,
		OwnerUsername: owner,
		UploadedAt:    time.Now(),
	}
}

// TableName returns the database table name for the Dataset model.
func (d *Dataset) TableName() string {
	return constants.TableDatasets
}
