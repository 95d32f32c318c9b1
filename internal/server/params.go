package server

import (
	"strconv"
	"strings"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/view"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Query parameters of the dashboard controls
const (
	paramScenario   = "scenario"
	paramName       = "name"
	paramEnergy     = "energy"
	paramCarbon     = "carbon"
	paramRegulatory = "regulatory"
	paramPayment    = "payment"
	paramCoverage   = "coverage"
	paramTerm       = "term"
	paramRate       = "rate"
	paramBenchmark  = "benchmark"
	paramExpanded   = "expanded"
	paramRemove     = "remove"
	paramColumns    = "columns"
	paramChart      = "chart"
	paramBreakdown  = "breakdown"
	paramFormat     = "format"
	paramQuery      = "q"
)

// adHocScenarioName names a custom scenario given only by slider values
const adHocScenarioName = "Ad hoc"

// badRequest marks an error caused by the request parameters
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func arg(args *fasthttp.Args, key string) string {
	return strings.TrimSpace(string(args.Peek(key)))
}

func flag(args *fasthttp.Args, key string) bool {
	v, err := strconv.ParseBool(arg(args, key))
	return err == nil && v
}

// sidebarFromArgs replays the control parameters onto the default sidebar.
// scenario=custom with slider values saves an ad hoc custom scenario into a
// per-request copy of the registry.
func (s *Server) sidebarFromArgs(args *fasthttp.Args) (view.Sidebar, error) {
	sb := s.defaultSidebar()

	if key := arg(args, paramScenario); key != "" {
		sb = sb.SelectScenario(key)
	}
	if sb.ShowScenarioModal {
		custom, err := customFromArgs(args)
		if err != nil {
			return sb, err
		}
		if sb, err = sb.SaveCustomScenario(custom); err != nil {
			return sb, badRequest{err}
		}
	} else if key := arg(args, paramScenario); key != "" {
		if _, known := sb.Scenarios.Lookup(key); !known {
			s.logger.Debug("unknown scenario key, using baseline", zap.String("scenario", key))
		}
	}

	if v := arg(args, paramPayment); v != "" {
		method, err := domain.ParsePaymentMethod(v)
		if err != nil {
			return sb, badRequest{err}
		}
		sb = sb.SetLoan(method == domain.PaymentLoan)
	}
	if v := arg(args, paramCoverage); v != "" {
		coverage, err := strconv.Atoi(v)
		if err != nil {
			return sb, badRequest{err}
		}
		sb = sb.SetCoverage(coverage)
	}
	if args.Has(paramTerm) {
		sb = sb.SetTerm(arg(args, paramTerm))
	}
	if args.Has(paramRate) {
		sb = sb.SetRate(arg(args, paramRate))
	}
	return sb, nil
}

func customFromArgs(args *fasthttp.Args) (domain.ScenarioInput, error) {
	name := arg(args, paramName)
	if name == "" {
		name = adHocScenarioName
	}
	values := make([]float64, 3)
	for i, key := range []string{paramEnergy, paramCarbon, paramRegulatory} {
		raw := arg(args, key)
		if raw == "" {
			// slider midpoints, carbon tax starts at zero
			if key != paramCarbon {
				values[i] = 50
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.ScenarioInput{}, badRequest{err}
		}
		values[i] = v
	}
	return domain.Custom(name, values[0], values[1], values[2]), nil
}

// defaultSidebar applies the configured control defaults
func (s *Server) defaultSidebar() view.Sidebar {
	return view.FromDefaults(s.engine.Scenarios, s.defaults)
}

// analysisFromRequest builds the asset analysis state from the navigation and
// control parameters
func (s *Server) analysisFromRequest(ctx *fasthttp.RequestCtx) (view.Analysis, error) {
	args := ctx.QueryArgs()
	sb, err := s.sidebarFromArgs(args)
	if err != nil {
		return view.Analysis{}, err
	}
	a := view.NewAnalysis(s.navigationState(ctx), sb)
	if flag(args, paramBenchmark) {
		a = a.ToggleBenchmark()
	}
	if flag(args, paramExpanded) {
		a = a.ToggleExpanded()
	}
	for _, raw := range args.PeekMulti(paramRemove) {
		id, err := strconv.Atoi(string(raw))
		if err != nil {
			return a, badRequest{err}
		}
		a = a.RemoveAsset(id)
	}
	return a, nil
}

// portfolioFromRequest builds the portfolio state. columns lists the enabled
// holdings columns; omitted keeps the defaults.
func (s *Server) portfolioFromRequest(ctx *fasthttp.RequestCtx) (view.Portfolio, error) {
	args := ctx.QueryArgs()
	sb, err := s.sidebarFromArgs(args)
	if err != nil {
		return view.Portfolio{}, err
	}
	p := view.NewPortfolio(s.engine.Reference.BaseColumns(), sb)
	if v := arg(args, paramChart); v != "" {
		if p, err = p.SetChartView(v); err != nil {
			return p, badRequest{err}
		}
	}
	if v := arg(args, paramBreakdown); v != "" {
		if p, err = p.SetBreakdown(v); err != nil {
			return p, badRequest{err}
		}
	}
	if flag(args, paramExpanded) {
		p = p.ToggleExpanded()
	}
	if args.Has(paramColumns) {
		want := map[string]bool{}
		for _, key := range strings.Split(arg(args, paramColumns), ",") {
			if key = strings.TrimSpace(key); key != "" {
				want[key] = true
			}
		}
		for _, c := range p.Columns {
			if c.Enabled != want[c.Key] {
				p = p.ToggleColumn(c.Key)
			}
		}
	}
	return p, nil
}
