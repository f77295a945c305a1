package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/models"

	"go.uber.org/zap"
)

// TransitionsRepository 状态转换审计仓库（只追加）
type TransitionsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransitionsRepository 创建状态转换审计仓库
func NewTransitionsRepository(db *sql.DB, logger *zap.Logger) *TransitionsRepository {
	return &TransitionsRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransition 追加一条审计记录
// event_type 为报警类型，解除转换带 "_CLEARED" 后缀
func (r *TransitionsRepository) CreateTransition(ctx context.Context, t *models.Transition) error {
	if t == nil {
		return fmt.Errorf("transition is required")
	}
	if t.HiveID == "" {
		return fmt.Errorf("hive_id is required")
	}

	query := `
		INSERT INTO alert_transitions (
			event_id,
			hive_id,
			event_type,
			direction,
			message,
			value,
			triggered_at,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.EventID,
		t.HiveID,
		t.EventType(),
		string(t.Direction),
		t.Message,
		t.Value,
		t.TriggeredAt,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("failed to create transition: %w", err)
	}

	return nil
}

// GetRecentTransitions 获取蜂箱最近的转换记录（新到旧），供宿主系统展示
func (r *TransitionsRepository) GetRecentTransitions(ctx context.Context, hiveID string, limit int) ([]models.Transition, error) {
	if hiveID == "" {
		return nil, fmt.Errorf("hive_id is required")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			event_id,
			hive_id,
			event_type,
			direction,
			message,
			value,
			triggered_at
		FROM alert_transitions
		WHERE hive_id = $1
		ORDER BY triggered_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, hiveID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer rows.Close()

	var transitions []models.Transition
	for rows.Next() {
		var t models.Transition
		var eventType, direction string
		if err := rows.Scan(
			&t.EventID,
			&t.HiveID,
			&eventType,
			&direction,
			&t.Message,
			&t.Value,
			&t.TriggeredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		t.Direction = models.Direction(direction)
		t.Kind = kindFromEventType(eventType)
		transitions = append(transitions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transitions: %w", err)
	}

	return transitions, nil
}

// kindFromEventType 从审计行的 event_type 还原报警类型（剥离 "_CLEARED" 后缀）
func kindFromEventType(eventType string) models.AlertKind {
	const suffix = "_CLEARED"
	if len(eventType) > len(suffix) && eventType[len(eventType)-len(suffix):] == suffix {
		return models.AlertKind(eventType[:len(eventType)-len(suffix)])
	}
	return models.AlertKind(eventType)
}
