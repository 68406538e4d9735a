// Package cli builds the rentown command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/Mackliffe/rent2own-engine/internal/adapters/cache"
	"github.com/Mackliffe/rent2own-engine/internal/app"
	"github.com/Mackliffe/rent2own-engine/internal/config"
	"github.com/Mackliffe/rent2own-engine/internal/domain/afford"
	"github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	"github.com/Mackliffe/rent2own-engine/internal/scenario"
	"github.com/Mackliffe/rent2own-engine/pkg/logger"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rentown",
		Short: "rentown - rent-to-own financial modeling engine",
		Long: `rentown models rent-to-own purchase agreements: it computes
amortization schedules, evaluates affordability, summarizes market
trends, and ranks candidate properties for a buyer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init()
		},
	}

	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newAffordCmd())
	rootCmd.AddCommand(newTrendCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadRuntime loads the configuration and builds a service from it.
func loadRuntime(ctx context.Context) (*config.Config, *app.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	opts := []app.Option{app.WithConfig(cfg)}
	if cfg.RedisAddr != "" {
		opts = append(opts, app.WithCache(cache.NewRedis(cfg.RedisAddr)))
	}
	return cfg, app.New(opts...), nil
}

// newScheduleCmd creates the schedule command
func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute a rent-to-own amortization schedule",
		Long: `Compute the monthly payment split between rent and equity for the
given property price and terms.
Example: rentown schedule --price 10000000 --down 0.10 --term 120 --rate 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}

			price, _ := cmd.Flags().GetFloat64("price")
			down, _ := cmd.Flags().GetFloat64("down")
			term, _ := cmd.Flags().GetInt("term")
			rate, _ := cmd.Flags().GetFloat64("rate")
			head, _ := cmd.Flags().GetInt("head")

			schedule, err := svc.ComputeSchedule(cmd.Context(), amortize.Terms{
				PropertyPrice:     price,
				DownPaymentRatio:  down,
				TermMonths:        term,
				AnnualRatePercent: rate,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tPAYMENT\tRENT\tEQUITY\tCUMULATIVE")
			for i, p := range schedule {
				if head > 0 && i >= head {
					fmt.Fprintf(w, "...\t(%d more periods)\t\t\t\n", len(schedule)-head)
					break
				}
				fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
					p.Index, p.TotalPayment, p.RentPortion, p.EquityPortion, p.CumulativeEquity)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Float64("price", 0, "Property price")
	cmd.Flags().Float64("down", 0.10, "Down payment ratio (0..1)")
	cmd.Flags().Int("term", 120, "Term in months")
	cmd.Flags().Float64("rate", 12, "Annual interest rate in percent")
	cmd.Flags().Int("head", 0, "Print only the first N periods (0 prints all)")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

// newAffordCmd creates the afford command
func newAffordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "afford",
		Short: "Evaluate affordability of a monthly payment",
		Long: `Evaluate the payment-to-income ratio for a household, or solve for
the maximum affordable property price with --max.
Example: rentown afford --income 300000 --debts 35000 --payment 75000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}

			income, _ := cmd.Flags().GetFloat64("income")
			debts, _ := cmd.Flags().GetFloat64("debts")
			max, _ := cmd.Flags().GetBool("max")

			if max {
				down, _ := cmd.Flags().GetFloat64("down")
				term, _ := cmd.Flags().GetInt("term")
				rate, _ := cmd.Flags().GetFloat64("rate")

				price, err := svc.MaxAffordablePrice(cmd.Context(), income, debts, afford.FinancingTerms{
					DownPaymentRatio:  down,
					TermMonths:        term,
					AnnualRatePercent: rate,
				})
				if err != nil {
					return err
				}
				fmt.Printf("max affordable price: %.2f\n", price)
				return nil
			}

			payment, _ := cmd.Flags().GetFloat64("payment")
			res, err := svc.EvaluateAffordability(cmd.Context(), afford.Profile{
				MonthlyIncome:          income,
				MonthlyDebtObligations: debts,
				ProposedMonthlyPayment: payment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("ratio: %.4f\nverdict: %s\n", res.Ratio, res.Verdict)
			return nil
		},
	}

	cmd.Flags().Float64("income", 0, "Gross monthly income")
	cmd.Flags().Float64("debts", 0, "Existing monthly debt obligations")
	cmd.Flags().Float64("payment", 0, "Proposed monthly payment")
	cmd.Flags().Bool("max", false, "Solve for the maximum affordable price instead")
	cmd.Flags().Float64("down", 0.10, "Down payment ratio used with --max")
	cmd.Flags().Int("term", 120, "Term in months used with --max")
	cmd.Flags().Float64("rate", 12, "Annual rate in percent used with --max")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}

// seriesFile is the YAML shape accepted by the trend command.
type seriesFile struct {
	Points []struct {
		Timestamp string  `koanf:"timestamp"`
		Price     float64 `koanf:"price"`
	} `koanf:"points"`
}

// newTrendCmd creates the trend command
func newTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Summarize a market price series",
		Long: `Load a YAML price series for one market segment and print its trend
direction, volatility, and projected next price.
Example: rentown trend --file nairobi.yaml --city Nairobi --type apartment`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("file")
			city, _ := cmd.Flags().GetString("city")
			propertyType, _ := cmd.Flags().GetString("type")

			series, err := loadSeries(path)
			if err != nil {
				return err
			}
			if err := svc.UpsertSeries(cmd.Context(), city, propertyType, series); err != nil {
				return err
			}
			summary, err := svc.TrendSummary(cmd.Context(), city, propertyType)
			if err != nil {
				return err
			}

			fmt.Printf("direction: %s\nvolatility: %.4f\nprojected price: %.2f\n",
				summary.Direction, summary.Volatility, summary.ProjectedPrice)
			return nil
		},
	}

	cmd.Flags().String("file", "", "YAML file with a points list")
	cmd.Flags().String("city", "", "Market city")
	cmd.Flags().String("type", "", "Property type")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("city")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// newRankCmd creates the rank command
func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Run a synthetic ranking scenario",
		Long: `Generate market history, buyers, and candidate properties, rank the
candidates through the full engine, and report the outcome.
Example: rentown rank --scenario scenario.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}

			scenarioPath, _ := cmd.Flags().GetString("scenario")
			scn := scenario.DefaultConfig()
			if scenarioPath != "" {
				scn, err = scenario.LoadConfig(scenarioPath)
				if err != nil {
					return err
				}
			}

			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}
			defer svc.Stop()

			report, err := scenario.Run(cmd.Context(), svc, scn)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "run\t%s\n", report.RunID)
			fmt.Fprintf(w, "workers\t%d\n", cfg.WorkerCount)
			fmt.Fprintf(w, "segments seeded\t%d\n", report.SegmentsSeeded)
			fmt.Fprintf(w, "buyers evaluated\t%d\n", report.BuyersEvaluated)
			fmt.Fprintf(w, "recommendations\t%d\n", report.Recommendations)
			fmt.Fprintf(w, "diagnostics\t%d\n", report.Diagnostics)
			fmt.Fprintf(w, "schedules verified\t%d\n", report.SchedulesVerified)
			fmt.Fprintf(w, "duration\t%s\n", report.Duration)
			return w.Flush()
		},
	}

	cmd.Flags().String("scenario", "", "Scenario YAML file (defaults apply when omitted)")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("rentown v1.0.0")
		},
	}
}

func loadSeries(path string) (trendSeries, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load series file %q: %w", path, err)
	}
	var parsed seriesFile
	if err := k.Unmarshal("", &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse series file %q: %w", path, err)
	}
	return buildSeries(parsed)
}
