package output

import (
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/goccy/go-json"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *domain.Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
