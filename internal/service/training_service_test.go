package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

func (f *datasetFixture) trainingService() *TrainingService {
	return NewTrainingService(f.datasets, f.store, f.cache)
}

const travelFAQ = "question,answer\n" +
	"book a flight to paris,Flights to Paris leave hourly\n" +
	"what is the weather today,Sunny with light wind\n" +
	"find a restaurant nearby,Try the bistro on Main Street\n"

func TestTrainingService_TrainAndTest(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "faq.csv", travelFAQ)
	svc := f.trainingService()
	ctx := context.Background()

	assert.False(t, svc.IsTrained(id))

	summary, err := svc.TrainBot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, summary.BotID)
	assert.Equal(t, 3, summary.Examples)
	assert.Greater(t, summary.Vocabulary, 0)
	assert.Equal(t, 100.0, summary.Accuracy)
	assert.True(t, svc.IsTrained(id))

	resp, err := svc.TestBot(ctx, id, "how is the weather")
	require.NoError(t, err)
	assert.Equal(t, "Sunny with light wind", resp.Answer)
	assert.Equal(t, "what is the weather today", resp.MatchedQuestion)
	assert.Greater(t, resp.Score, 0.0)
}

func TestTrainingService_AnswerColumnFallbacks(t *testing.T) {
	f := newDatasetFixture(t)
	svc := f.trainingService()
	ctx := context.Background()

	withIntent := f.createBot(t, "intents.csv", "sentence,intent\nbook a flight,book_flight\nwill it rain,check_weather\n")
	_, err := svc.TrainBot(ctx, withIntent)
	require.NoError(t, err)
	resp, err := svc.TestBot(ctx, withIntent, "rain later?")
	require.NoError(t, err)
	assert.Equal(t, "check_weather", resp.Answer)

	questionsOnly := f.createBot(t, "questions.csv", "question\nopen an account\nclose an account\n")
	_, err = svc.TrainBot(ctx, questionsOnly)
	require.NoError(t, err)
	resp, err = svc.TestBot(ctx, questionsOnly, "close it")
	require.NoError(t, err)
	assert.Equal(t, "close an account", resp.Answer)
}

func TestTrainingService_RetrainReplacesModel(t *testing.T) {
	f := newDatasetFixture(t)
	svc := f.trainingService()
	ctx := context.Background()

	id := f.createBot(t, "faq.csv", "question,answer\nhello there,first\n")
	_, err := svc.TrainBot(ctx, id)
	require.NoError(t, err)

	// a later upload with the same name replaces the file for this bot too
	f.createBot(t, "faq.csv", "question,answer\nhello there,second\n")
	_, err = svc.TrainBot(ctx, id)
	require.NoError(t, err)

	resp, err := svc.TestBot(ctx, id, "hello")
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Answer)
}

func TestTrainingService_TestUntrainedBot(t *testing.T) {
	f := newDatasetFixture(t)

	_, err := f.trainingService().TestBot(context.Background(), 1, "hello")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, utils.StatusCode(err))
	assert.Equal(t, constants.MsgBotNotTrained, err.Error())
}

func TestTrainingService_TrainErrors(t *testing.T) {
	f := newDatasetFixture(t)
	svc := f.trainingService()
	ctx := context.Background()

	_, err := svc.TrainBot(ctx, 42)
	assert.True(t, utils.IsNotFoundError(err))

	blank := f.createBot(t, "blank.csv", "question,answer\n ,x\n!!!,y\n")
	_, err = svc.TrainBot(ctx, blank)
	require.Error(t, err)
	assert.Equal(t, constants.MsgNoTrainingExamples, err.(*utils.AppError).Message)

	noColumn := f.createBot(t, "nocol.csv", "answer\nx\n")
	_, err = svc.TrainBot(ctx, noColumn)
	require.Error(t, err)
	assert.Equal(t, constants.MsgMissingTextColumn, err.(*utils.AppError).Message)

	assert.False(t, svc.IsTrained(blank))
}

func TestTrainingService_ConcurrentAccess(t *testing.T) {
	f := newDatasetFixture(t)
	id := f.createBot(t, "faq.csv", travelFAQ)
	svc := f.trainingService()
	ctx := context.Background()

	_, err := svc.TrainBot(ctx, id)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.TrainBot(ctx, id)
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.TestBot(ctx, id, "weather")
		}()
	}
	wg.Wait()

	assert.True(t, svc.IsTrained(id))
}
