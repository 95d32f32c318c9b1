package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with chart data embedded as JSON.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"fixed":    func(d decimal.Decimal, places int32) string { return d.StringFixed(places) },
	"millions": FormatMillions,
	"pct":      FormatPercentage,
	"enabled":  calculation.EnabledColumns,
	"field":    func(h domain.HoldingRow, key string) string { return h.Field(key) },
	"breakdown": func(v string) string {
		return domain.OptionLabel(domain.BreakdownOptions, v)
	},
	"json": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		return template.JS(b), err
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Recommendation Recommendation
		Assumptions    []string
	}{r, RecommendScenario(r.Comparison), reportAssumptions(r)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
