// Command riskdash runs the climate risk analytics dashboard from the command
// line or as an HTTP API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "riskdash",
		Short:        "Climate transition risk analytics for commercial real-estate portfolios",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (default $"+envConfigName+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(detailsCmd(a))
	rootCmd.AddCommand(analyzeCmd(a))
	rootCmd.AddCommand(portfolioCmd(a))
	rootCmd.AddCommand(insightsCmd(a))
	rootCmd.AddCommand(reportCmd(a))
	rootCmd.AddCommand(scenariosCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(initConfigCmd())
	return rootCmd
}

func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search the property catalog by address, city, client or country",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runSearch(cmd, args)
		},
	}
}

func detailsCmd(a *app) *cobra.Command {
	var (
		ids     []int
		current int
	)
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show the details step for one property of a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runDetails(cmd, ids, current)
		},
	}
	cmd.Flags().IntSliceVarP(&ids, "properties", "p", nil, "selected property ids")
	cmd.Flags().IntVar(&current, "current", 1, "1-based position in the selection")
	return cmd
}

func analyzeCmd(a *app) *cobra.Command {
	var (
		c         controls
		out       outputFlags
		ids       []int
		benchmark bool
		expanded  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the asset analysis under a scenario and payment structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runAnalyze(cmd, c, out, ids, benchmark, expanded)
		},
	}
	c.register(cmd)
	out.register(cmd, "console-lite")
	cmd.Flags().IntSliceVarP(&ids, "properties", "p", nil, "selected property ids")
	cmd.Flags().BoolVar(&benchmark, "benchmark", false, "include the benchmark line")
	cmd.Flags().BoolVar(&expanded, "expanded", false, "use the expanded chart layout")
	return cmd
}

func portfolioCmd(a *app) *cobra.Command {
	var (
		c   controls
		out outputFlags
		p   portfolioFlags
	)
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show the portfolio overview under a scenario and payment structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runPortfolio(cmd, c, out, p)
		},
	}
	c.register(cmd)
	out.register(cmd, "console-lite")
	p.register(cmd)
	return cmd
}

func insightsCmd(a *app) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show the key insights summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runInsights(cmd, out)
		},
	}
	out.register(cmd, "console-lite")
	return cmd
}

func reportCmd(a *app) *cobra.Command {
	var (
		c   controls
		out outputFlags
		p   portfolioFlags
		ids []int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render every view and the scenario comparison into report files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runReport(cmd, c, out, p, ids)
		},
	}
	c.register(cmd)
	out.register(cmd, "all")
	p.register(cmd)
	cmd.Flags().IntSliceVarP(&ids, "properties", "p", nil, "selected property ids")
	return cmd
}

func scenariosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the named and configured custom scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			return a.runScenarios(cmd)
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard views as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				a.config.Server.Port = port
			}
			return a.runServe(cmd)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "P", 0, "HTTP server port (default from configuration)")
	return cmd
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [file]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "riskdash.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			return runInitConfig(cmd, filename)
		},
	}
}
