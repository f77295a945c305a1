package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMockThresholdsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ThresholdsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	repo := NewThresholdsRepository(db, logger)

	return db, mock, repo
}

func TestGetThresholds_Success(t *testing.T) {
	db, mock, repo := setupMockThresholdsDB(t)
	defer db.Close()

	ctx := context.Background()
	updatedAt := time.Now()

	rows := sqlmock.NewRows([]string{
		"hive_id", "temp_max", "temp_min", "humidity_max", "humidity_min",
		"max_weight_drop_per_hour_kg", "sound_max", "sound_min", "co2_max",
		"swarm_risk_max", "battery_min", "daily_gain_min_kg", "updated_at",
	}).AddRow(
		"hive-1", 36.0, 30.0, 80.0, 40.0,
		0.5, 60.0, 30.0, 2000.0,
		0.8, 20.0, 0.2, updatedAt,
	)

	mock.ExpectQuery(`SELECT`).
		WithArgs("hive-1").
		WillReturnRows(rows)

	cfg, err := repo.GetThresholds(ctx, "hive-1")

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "hive-1", cfg.HiveID)
	assert.Equal(t, 36.0, cfg.TempMax)
	assert.Equal(t, 30.0, cfg.TempMin)
	assert.Equal(t, 0.5, cfg.MaxWeightDropPerHourKg)
	assert.Equal(t, 0.2, cfg.DailyGainMinKg)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetThresholds_NotFoundReturnsNil(t *testing.T) {
	db, mock, repo := setupMockThresholdsDB(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT`).
		WithArgs("hive-unknown").
		WillReturnError(sql.ErrNoRows)

	cfg, err := repo.GetThresholds(ctx, "hive-unknown")

	// 配置缺失不是错误：降级为无报警
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetThresholds_EmptyHiveID(t *testing.T) {
	db, mock, repo := setupMockThresholdsDB(t)
	defer db.Close()

	ctx := context.Background()

	cfg, err := repo.GetThresholds(ctx, "")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "hive_id is required")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetThresholds_QueryError(t *testing.T) {
	db, mock, repo := setupMockThresholdsDB(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT`).
		WithArgs("hive-1").
		WillReturnError(sql.ErrConnDone)

	cfg, err := repo.GetThresholds(ctx, "hive-1")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to get thresholds")

	require.NoError(t, mock.ExpectationsWereMet())
}
