package scripts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/models"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

type fakeUsers struct {
	registered []string
	err        error
}

func (f *fakeUsers) RegisterUser(_ context.Context, reg *models.UserRegistration) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = append(f.registered, reg.Username)
	return &models.User{ID: 1, Username: reg.Username}, nil
}

type fakeBots struct {
	owner   string
	content string
	err     error
}

func (f *fakeBots) CreateBot(_ context.Context, name, owner, filename string, content io.Reader) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	f.owner = owner
	f.content = string(data)
	return 9, nil
}

func newMockPool(t *testing.T) (*database.Pool, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &database.Pool{DB: db, Dialect: database.Postgres}, mock
}

var seedCfg = config.SeedSettings{Enabled: true, Username: "demo", Password: "demo-password"}

func TestSeedDatabase_Disabled(t *testing.T) {
	pool, mock := newMockPool(t)
	users := &fakeUsers{}

	seeder := NewSeeder(pool, config.SeedSettings{}, users, &fakeBots{})
	require.NoError(t, seeder.SeedDatabase(context.Background()))

	assert.Empty(t, users.registered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDatabase_FreshDatabase(t *testing.T) {
	pool, mock := newMockPool(t)
	users := &fakeUsers{}
	bots := &fakeBots{}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectExec("INSERT INTO seeds").WithArgs("demo_user").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO seeds").WithArgs("demo_bot").WillReturnResult(sqlmock.NewResult(0, 1))

	seeder := NewSeeder(pool, seedCfg, users, bots)
	require.NoError(t, seeder.SeedDatabase(context.Background()))

	assert.Equal(t, []string{"demo"}, users.registered)
	assert.Equal(t, "demo", bots.owner)
	assert.NoError(t, mock.ExpectationsWereMet())

	table, err := dataset.Parse(strings.NewReader(bots.content), dataset.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 6, table.Len())
}

func TestSeedDatabase_SkipsExecutedSeeds(t *testing.T) {
	pool, mock := newMockPool(t)
	users := &fakeUsers{}
	bots := &fakeBots{}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("demo_user"))
	mock.ExpectExec("INSERT INTO seeds").WithArgs("demo_bot").WillReturnResult(sqlmock.NewResult(0, 1))

	seeder := NewSeeder(pool, seedCfg, users, bots)
	require.NoError(t, seeder.SeedDatabase(context.Background()))

	assert.Empty(t, users.registered)
	assert.Equal(t, "demo", bots.owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDemoUser_ExistingAccount(t *testing.T) {
	pool, _ := newMockPool(t)
	users := &fakeUsers{err: utils.NewConflictError(http.StatusBadRequest, "Username already exists")}

	seeder := NewSeeder(pool, seedCfg, users, &fakeBots{})
	assert.NoError(t, seeder.seedDemoUser(context.Background()))
}

func TestSeedDatabase_FailedSeedIsNotRecorded(t *testing.T) {
	pool, mock := newMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("demo_user"))

	seeder := NewSeeder(pool, seedCfg, &fakeUsers{}, &fakeBots{err: errors.New("disk full")})
	err := seeder.SeedDatabase(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed demo_bot failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
