package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/jmwangi/pesatrack/internal/util"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var month, year int
	var daily, prev bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the monthly spending report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if prev {
					year, month = util.PreviousMonth(year, month)
				}
				summary, err := a.reports.FetchMonthlyReport(ctx, year, month)
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to build report"))
				}

				fmt.Printf("%s %d\n\n", util.MonthName(summary.Month), summary.Year)
				fmt.Printf("Total spent:    %s\n", a.currencies.Format(summary.TotalAmount))
				fmt.Printf("Transactions:   %d\n", summary.TransactionCount)
				fmt.Printf("Daily average:  %s\n", a.currencies.Format(summary.AveragePerDay()))
				if summary.BudgetWarning != "" {
					fmt.Printf("Warning:        %s\n", summary.BudgetWarning)
				}

				if len(summary.CategoryBreakdown) > 0 {
					fmt.Println("\nBy category:")
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					for _, category := range domain.Categories {
						amount, ok := summary.CategoryBreakdown[category]
						if !ok {
							continue
						}
						fmt.Fprintf(w, "  %s\t%s\t%s%%\n",
							category, a.currencies.Format(amount), summary.CategoryPercent(category))
					}
					if err := w.Flush(); err != nil {
						return err
					}
				}

				if daily {
					fmt.Println("\nDaily:")
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					for _, point := range summary.DailySeries {
						marker := " "
						if util.SameDay(point.Day, time.Now()) {
							marker = ">"
						}
						bar := strings.Repeat("#", point.Count)
						fmt.Fprintf(w, " %s%s\t%s\t%s\n", marker, point.Label(), a.currencies.Format(point.Amount), bar)
					}
					return w.Flush()
				}
				return nil
			})
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "report month (1-12)")
	cmd.Flags().IntVar(&year, "year", now.Year(), "report year")
	cmd.Flags().BoolVar(&daily, "daily", false, "include the day-by-day series")
	cmd.Flags().BoolVar(&prev, "prev", false, "report on the month before the selected one")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the expense history as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				path := out
				if path == "" {
					path = fmt.Sprintf("expenses-%s.csv", time.Now().Format("2006-01"))
				}
				if err := a.exports.DownloadToFile(ctx, path); err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Export failed"))
				}
				fmt.Printf("Saved %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file path")
	return cmd
}

func newCurrencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency [code]",
		Short: "Show or set the display currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				if len(args) == 0 {
					current := a.currencies.Current()
					for _, currency := range domain.Currencies {
						marker := " "
						if currency.Code == current.Code {
							marker = "*"
						}
						fmt.Printf("%s %s  %s (%s)\n", marker, currency.Code, currency.Name, currency.Symbol)
					}
					return nil
				}

				set, err := a.currencies.Set(args[0])
				if err != nil {
					return fmt.Errorf("unknown currency %q", args[0])
				}
				fmt.Printf("Display currency set to %s (%s)\n", set.Code, set.Symbol)
				return nil
			})
		},
	}
	return cmd
}
