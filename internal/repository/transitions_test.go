package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mnmalikdev/beelive-backend/internal/models"
)

func setupMockTransitionsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *TransitionsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	repo := NewTransitionsRepository(db, logger)

	return db, mock, repo
}

func TestCreateTransition_Success(t *testing.T) {
	db, mock, repo := setupMockTransitionsDB(t)
	defer db.Close()

	ctx := context.Background()
	tr := &models.Transition{
		EventID:     uuid.New().String(),
		HiveID:      "hive-1",
		Kind:        models.KindTempHigh,
		Direction:   models.DirectionTriggered,
		Message:     "hive temperature 37.0°C above limit 36.0°C",
		Value:       37.0,
		TriggeredAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO alert_transitions`).
		WithArgs(
			tr.EventID, tr.HiveID, "TEMP_HIGH", "TRIGGERED",
			tr.Message, tr.Value, tr.TriggeredAt, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateTransition(ctx, tr)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransition_ClearedAppendsSuffix(t *testing.T) {
	db, mock, repo := setupMockTransitionsDB(t)
	defer db.Close()

	ctx := context.Background()
	tr := &models.Transition{
		EventID:     uuid.New().String(),
		HiveID:      "hive-1",
		Kind:        models.KindTempHigh,
		Direction:   models.DirectionCleared,
		Message:     "hive temperature 34.0°C back within limit 36.0°C",
		Value:       34.0,
		TriggeredAt: time.Now(),
	}

	// 解除转换的审计行带 "_CLEARED" 后缀，与进入转换的行区分
	mock.ExpectExec(`INSERT INTO alert_transitions`).
		WithArgs(
			tr.EventID, tr.HiveID, "TEMP_HIGH_CLEARED", "CLEARED",
			tr.Message, tr.Value, tr.TriggeredAt, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateTransition(ctx, tr)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransition_InvalidInput(t *testing.T) {
	db, mock, repo := setupMockTransitionsDB(t)
	defer db.Close()

	ctx := context.Background()

	err := repo.CreateTransition(ctx, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transition is required")

	err = repo.CreateTransition(ctx, &models.Transition{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hive_id is required")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentTransitions_Success(t *testing.T) {
	db, mock, repo := setupMockTransitionsDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"event_id", "hive_id", "event_type", "direction", "message", "value", "triggered_at",
	}).AddRow(
		uuid.New().String(), "hive-1", "TEMP_HIGH_CLEARED", "CLEARED",
		"hive temperature 34.0°C back within limit 36.0°C", 34.0, now,
	).AddRow(
		uuid.New().String(), "hive-1", "TEMP_HIGH", "TRIGGERED",
		"hive temperature 37.0°C above limit 36.0°C", 37.0, now.Add(-time.Hour),
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs("hive-1", 10).
		WillReturnRows(rows)

	transitions, err := repo.GetRecentTransitions(ctx, "hive-1", 10)

	require.NoError(t, err)
	require.Len(t, transitions, 2)

	// "_CLEARED" 后缀被剥离还原为报警类型
	assert.Equal(t, models.KindTempHigh, transitions[0].Kind)
	assert.Equal(t, models.DirectionCleared, transitions[0].Direction)
	assert.Equal(t, models.KindTempHigh, transitions[1].Kind)
	assert.Equal(t, models.DirectionTriggered, transitions[1].Direction)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentTransitions_EmptyHiveID(t *testing.T) {
	db, mock, repo := setupMockTransitionsDB(t)
	defer db.Close()

	ctx := context.Background()

	transitions, err := repo.GetRecentTransitions(ctx, "", 10)

	assert.Error(t, err)
	assert.Nil(t, transitions)
	assert.Contains(t, err.Error(), "hive_id is required")

	require.NoError(t, mock.ExpectationsWereMet())
}
