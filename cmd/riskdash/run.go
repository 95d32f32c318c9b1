package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/climatelens/risk-analytics/internal/calculation"
	"github.com/climatelens/risk-analytics/internal/config"
	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/climatelens/risk-analytics/internal/logging"
	"github.com/climatelens/risk-analytics/internal/navigation"
	"github.com/climatelens/risk-analytics/internal/output"
	"github.com/climatelens/risk-analytics/internal/server"
	"github.com/climatelens/risk-analytics/internal/view"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const envConfigName = config.EnvConfig

// app holds what every command needs once the configuration is loaded
type app struct {
	configPath string
	logLevel   string
	envFile    string

	config *domain.Configuration
	logger *zap.Logger
	engine *calculation.AnalysisEngine
}

// setup loads the dotenv file, the configuration and the environment
// overrides, then builds the logger and the engine
func (a *app) setup(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", a.envFile, err)
		}
	}

	parser := config.NewInputParser()
	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	var err error
	if path != "" {
		if a.config, err = parser.LoadFromFile(path); err != nil {
			return err
		}
	} else {
		a.config = parser.DefaultConfiguration()
	}
	if err := parser.ApplyEnvironment(a.config, os.LookupEnv); err != nil {
		return err
	}
	if a.logLevel != "" {
		a.config.Server.LogLevel = a.logLevel
	}

	// stdout carries the reports
	a.logger = logging.New(a.config.Server.LogLevel, cmd.ErrOrStderr())
	a.engine, err = calculation.NewDefaultAnalysisEngine(a.config.CustomScenarios...)
	if err != nil {
		return err
	}
	a.engine.SetLogger(logging.EngineLogger(a.logger))
	a.logger.Debug("configuration loaded",
		zap.String("file", path),
		zap.String("scenario", a.config.Defaults.Scenario),
		zap.Int("custom_scenarios", len(a.config.CustomScenarios)),
	)
	return nil
}

func (a *app) sidebar(cmd *cobra.Command, c controls) (view.Sidebar, error) {
	return c.apply(cmd, view.FromDefaults(a.engine.Scenarios, a.config.Defaults))
}

func (a *app) runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	results := a.engine.Catalog.FindProperties(query)
	w := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(w, "No properties match %q\n", query)
		return nil
	}
	fmt.Fprintf(w, "%-4s %-40s %-28s %s\n", "ID", "ADDRESS", "CLIENT", "RISK")
	for _, p := range results {
		fmt.Fprintf(w, "%-4d %-40s %-28s %s\n", p.ID, p.Address, p.ClientName, p.RiskLevel.Title())
	}
	return nil
}

func (a *app) runDetails(cmd *cobra.Command, ids []int, current int) error {
	state := navigation.NewState(ids...)
	state.Current = current
	if len(ids) > 0 && (current < 1 || current > len(ids)) {
		return fmt.Errorf("%w: %d is outside 1..%d", navigation.ErrInvalidCurrent, current, len(ids))
	}
	d, err := a.engine.AssetDetails(cmd.Context(), state)
	if err != nil {
		return err
	}
	return writeJSON(cmd, d)
}

func (a *app) analysisRequest(cmd *cobra.Command, c controls, ids []int, benchmark, expanded bool) (calculation.AnalysisRequest, error) {
	sb, err := a.sidebar(cmd, c)
	if err != nil {
		return calculation.AnalysisRequest{}, err
	}
	state := view.NewAnalysis(navigation.NewState(ids...), sb)
	if benchmark {
		state = state.ToggleBenchmark()
	}
	if expanded {
		state = state.ToggleExpanded()
	}
	return state.Request(), nil
}

func (a *app) portfolioRequest(cmd *cobra.Command, c controls, p portfolioFlags) (calculation.PortfolioRequest, error) {
	sb, err := a.sidebar(cmd, c)
	if err != nil {
		return calculation.PortfolioRequest{}, err
	}
	state, err := p.apply(cmd, view.NewPortfolio(a.engine.Reference.BaseColumns(), sb))
	if err != nil {
		return calculation.PortfolioRequest{}, err
	}
	return state.Request(), nil
}

func (a *app) runAnalyze(cmd *cobra.Command, c controls, out outputFlags, ids []int, benchmark, expanded bool) error {
	req, err := a.analysisRequest(cmd, c, ids, benchmark, expanded)
	if err != nil {
		return err
	}
	return a.render(cmd, calculation.ReportRequest{Asset: &req, Compare: true}, out)
}

func (a *app) runPortfolio(cmd *cobra.Command, c controls, out outputFlags, p portfolioFlags) error {
	req, err := a.portfolioRequest(cmd, c, p)
	if err != nil {
		return err
	}
	return a.render(cmd, calculation.ReportRequest{Portfolio: &req}, out)
}

func (a *app) runInsights(cmd *cobra.Command, out outputFlags) error {
	return a.render(cmd, calculation.ReportRequest{Insights: true}, out)
}

func (a *app) runReport(cmd *cobra.Command, c controls, out outputFlags, p portfolioFlags, ids []int) error {
	asset, err := a.analysisRequest(cmd, c, ids, false, false)
	if err != nil {
		return err
	}
	portfolio, err := a.portfolioRequest(cmd, c, p)
	if err != nil {
		return err
	}
	if out.dir == "" {
		out.dir = "."
	}
	return a.render(cmd, calculation.ReportRequest{
		Asset:     &asset,
		Portfolio: &portfolio,
		Insights:  true,
		Compare:   true,
	}, out)
}

// render builds the report and prints it, or writes it to files when an
// output directory is given. "all" always writes files.
func (a *app) render(cmd *cobra.Command, req calculation.ReportRequest, out outputFlags) error {
	report, err := a.engine.BuildReport(cmd.Context(), req)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if out.dir == "" && output.NormalizeFormatName(out.format) == "all" {
		out.dir = "."
	}
	if out.dir != "" {
		files, err := output.GenerateReport(report, out.format, out.dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(w, "Wrote %s\n", f)
		}
		a.logger.Info("report written", zap.String("format", out.format), zap.Strings("files", files))
		return nil
	}

	f, err := output.LookupFormatter(out.format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *app) runScenarios(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-24s %-28s %s\n", "KEY", "LABEL", "MULTIPLIER")
	for _, in := range a.engine.Scenarios.List() {
		fmt.Fprintf(w, "%-24s %-28s %s\n", in.Key(), in.Label(), calculation.ComputeMultiplier(in).StringFixed(2))
	}
	return nil
}

func (a *app) runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() { _ = a.logger.Sync() }()
	srv := server.New(a.engine, a.config.Defaults, a.logger)
	return srv.ListenAndServe(ctx, ":"+strconv.Itoa(a.config.Server.Port))
}

func runInitConfig(cmd *cobra.Command, filename string) error {
	if err := config.NewInputParser().WriteExampleConfiguration(filename); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote example configuration to %s\n", filename)
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
