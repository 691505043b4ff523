package logger

import "github.com/prometheus/client_golang/prometheus"

// LogStatements exposes the log_statements_total collector to tests.
func LogStatements() *prometheus.CounterVec {
	return logStatements
}
