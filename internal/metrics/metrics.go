package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 评估指标
	ReadingsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beelive_readings_evaluated_total",
			Help: "Total number of readings processed by the evaluator",
		},
		[]string{"status"}, // status: evaluated, skipped_no_config
	)

	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beelive_transitions_total",
			Help: "Total number of alert transitions emitted",
		},
		[]string{"kind", "direction"},
	)

	TransitionsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beelive_transitions_suppressed_total",
			Help: "Transitions suppressed by the debounce window",
		},
		[]string{"kind"},
	)

	// 接收器指标
	SinkErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beelive_sink_errors_total",
			Help: "Transition sink failures by operation",
		},
		[]string{"op"}, // op: record, publish
	)

	// 配置指标
	ThresholdLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beelive_threshold_loads_total",
			Help: "Threshold config load attempts by result",
		},
		[]string{"status"}, // status: loaded, missing, error
	)

	// 消费指标
	ReadingsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beelive_readings_consumed_total",
			Help: "Readings consumed from the ingest stream by result",
		},
		[]string{"status"}, // status: ok, decode_error, evaluate_error
	)
)
