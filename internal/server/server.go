// Package server exposes the dashboard views as a JSON API over fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/navigation"
	"github.com/climatelens/risk-analytics/internal/output"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Routes
const (
	routeHealth     = "/healthz"
	routeProperties = "/api/properties"
	routeDetails    = "/api/asset/details"
	routeAnalysis   = "/api/asset/analysis"
	routePortfolio  = "/api/portfolio/overview"
	routeInsights   = "/api/key-insights"
	routeScenarios  = "/api/scenarios"
	routeReport     = "/report"
	routeMetrics    = "/metrics"
)

// DefaultReportFormat is rendered by /report when no format is given
const DefaultReportFormat = "json"

var errNotFound = errors.New("not found")

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ScenarioView describes one selectable scenario
type ScenarioView struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	Multiplier  decimal.Decimal `json:"multiplier"`
}

// Server serves the dashboard views from one analysis engine
type Server struct {
	engine   *calculation.AnalysisEngine
	defaults domain.Defaults
	logger   *zap.Logger
	metrics  *Metrics
	routes   map[string]fasthttp.RequestHandler
}

// New creates a server. defaults seed the controls of every request; a nil
// logger discards request logs.
func New(engine *calculation.AnalysisEngine, defaults domain.Defaults, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:   engine,
		defaults: defaults,
		logger:   logger,
		metrics:  NewMetrics(),
	}
	s.routes = map[string]fasthttp.RequestHandler{
		routeHealth:     s.handleHealth,
		routeProperties: s.handleSearch,
		routeDetails:    s.handleDetails,
		routeAnalysis:   s.handleAnalysis,
		routePortfolio:  s.handlePortfolio,
		routeInsights:   s.handleInsights,
		routeScenarios:  s.handleScenarios,
		routeReport:     s.handleReport,
		routeMetrics:    s.metrics.Handler(),
	}
	return s
}

// Metrics returns the server's metrics
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the routed request handler wrapped with logging and metrics
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		route := s.dispatch(ctx)
		status := ctx.Response.StatusCode()
		elapsed := time.Since(start)

		s.metrics.RecordRequest(route, string(ctx.Method()), status, elapsed)
		s.logger.Info("request",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		)
	}
}

// dispatch runs the matching route and returns its name for metrics
func (s *Server) dispatch(ctx *fasthttp.RequestCtx) string {
	if !ctx.IsGet() && !ctx.IsHead() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return "other"
	}
	path := strings.TrimSuffix(string(ctx.Path()), "/")
	if h, ok := s.routes[path]; ok {
		h(ctx)
		return path
	}
	if raw, ok := strings.CutPrefix(path, routeProperties+"/"); ok {
		s.handleProperty(ctx, raw)
		return routeProperties + "/:id"
	}
	s.writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", path))
	return "other"
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "riskdash",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		return srv.Shutdown()
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(ctx *fasthttp.RequestCtx) {
	results := s.engine.Catalog.FindProperties(arg(ctx.QueryArgs(), paramQuery))
	if results == nil {
		results = []domain.PropertyRecord{}
	}
	s.writeJSON(ctx, results)
}

func (s *Server) handleProperty(ctx *fasthttp.RequestCtx, raw string) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		s.fail(ctx, badRequest{fmt.Errorf("%w: %q", navigation.ErrInvalidPropertyID, raw)})
		return
	}
	p, ok := s.engine.Catalog.ByID(id)
	if !ok {
		s.fail(ctx, fmt.Errorf("property %d: %w", id, errNotFound))
		return
	}
	s.writeJSON(ctx, p)
}

func (s *Server) handleDetails(ctx *fasthttp.RequestCtx) {
	d, err := s.engine.AssetDetails(ctx, s.navigationState(ctx))
	if err != nil {
		s.fail(ctx, err)
		return
	}
	s.writeJSON(ctx, d)
}

func (s *Server) handleAnalysis(ctx *fasthttp.RequestCtx) {
	a, err := s.analysisFromRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	req := a.Request()
	out, err := s.engine.AnalyzeAssets(ctx, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	s.metrics.RecordScenario("asset", string(req.Scenario.Kind))
	s.writeJSON(ctx, out)
}

func (s *Server) handlePortfolio(ctx *fasthttp.RequestCtx) {
	p, err := s.portfolioFromRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	req := p.Request()
	out, err := s.engine.PortfolioOverview(ctx, req)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	s.metrics.RecordScenario("portfolio", string(req.Scenario.Kind))
	s.writeJSON(ctx, out)
}

func (s *Server) handleInsights(ctx *fasthttp.RequestCtx) {
	out, err := s.engine.KeyInsights(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	s.writeJSON(ctx, out)
}

func (s *Server) handleScenarios(ctx *fasthttp.RequestCtx) {
	list := s.engine.Scenarios.List()
	out := make([]ScenarioView, 0, len(list))
	for _, in := range list {
		out = append(out, ScenarioView{
			Key:         in.Key(),
			Label:       in.Label(),
			Description: in.Description(),
			Kind:        string(in.Kind),
			Multiplier:  calculation.ComputeMultiplier(in),
		})
	}
	s.writeJSON(ctx, out)
}

// handleReport renders every view under the request's controls in one format
func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	format := arg(ctx.QueryArgs(), paramFormat)
	if format == "" {
		format = DefaultReportFormat
	}
	f, err := output.LookupFormatter(format)
	if err != nil {
		s.fail(ctx, badRequest{err})
		return
	}
	a, err := s.analysisFromRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	p, err := s.portfolioFromRequest(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	asset, portfolio := a.Request(), p.Request()
	report, err := s.engine.BuildReport(ctx, calculation.ReportRequest{
		Asset:     &asset,
		Portfolio: &portfolio,
		Insights:  true,
		Compare:   true,
	})
	if err != nil {
		s.fail(ctx, err)
		return
	}
	data, err := f.Format(report)
	if err != nil {
		s.fail(ctx, fmt.Errorf("failed to render %s report: %w", f.Name(), err))
		return
	}
	s.metrics.RecordReport(f.Name())
	ctx.SetContentType(output.ContentType(f.Name()))
	ctx.SetBody(data)
}

// navigationState reads the wizard state leniently, the way the pages do
func (s *Server) navigationState(ctx *fasthttp.RequestCtx) navigation.State {
	return navigation.ParseOrDefault(string(ctx.URI().QueryString()))
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.fail(ctx, fmt.Errorf("failed to encode response: %w", err))
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

// fail maps an error to its status code
func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	var bad badRequest
	status := fasthttp.StatusInternalServerError
	switch {
	case errors.As(err, &bad),
		errors.Is(err, calculation.ErrNoPropertiesSelected),
		errors.Is(err, navigation.ErrInvalidPropertyID):
		status = fasthttp.StatusBadRequest
	case errors.Is(err, errNotFound):
		status = fasthttp.StatusNotFound
	}
	if status == fasthttp.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", string(ctx.Path())), zap.Error(err))
	}
	s.writeError(ctx, status, err.Error())
}
