package models

// TrainBotRequest asks for the retrieval model of a bot to be (re)built.
type TrainBotRequest struct {
	BotID int64 `json:"bot_id" form:"bot_id" validate:"required,gt=0"`
}

// TrainingSummary describes a freshly built model. Accuracy is the percentage
// of the training questions the model answers correctly.
type TrainingSummary struct {
	BotID      int64   `json:"bot_id"`
	Examples   int     `json:"examples"`
	Vocabulary int     `json:"vocabulary"`
	Accuracy   float64 `json:"accuracy"`
}

// TestBotRequest sends one message to a trained bot.
type TestBotRequest struct {
	BotID   int64  `json:"bot_id" form:"bot_id" validate:"required,gt=0"`
	Message string `json:"message" form:"message" validate:"required,notblank"`
}

// TestBotResponse is the best answer found for a message.
type TestBotResponse struct {
	Answer          string  `json:"answer"`
	MatchedQuestion string  `json:"matched_question"`
	Score           float64 `json:"score"`
}
