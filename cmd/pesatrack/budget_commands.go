package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/spf13/cobra"
)

func newBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and review monthly category budgets",
	}
	cmd.AddCommand(newBudgetSetCmd())
	cmd.AddCommand(newBudgetListCmd())
	cmd.AddCommand(newBudgetRemoveCmd())
	return cmd
}

func newBudgetSetCmd() *cobra.Command {
	var month, year int
	var category string

	cmd := &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the budget for a category and month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				budget, err := a.budgets.Set(ctx, domain.BudgetDraft{
					Month:    month,
					Year:     year,
					Amount:   amount,
					Category: domain.Category(category),
				})
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to set budget"))
				}
				fmt.Printf("Budget for %s %d/%d set to %s\n",
					budget.Category, budget.Month, budget.Year, a.currencies.Format(budget.Amount))
				return nil
			})
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "budget month (1-12)")
	cmd.Flags().IntVar(&year, "year", now.Year(), "budget year")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryOther), "budget category")
	return cmd
}

func newBudgetListCmd() *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				budgets, err := a.budgets.List(ctx, month, year)
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to list budgets"))
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tMONTH\tCATEGORY\tAMOUNT")
				for _, budget := range budgets {
					fmt.Fprintf(w, "%d\t%d/%d\t%s\t%s\n",
						budget.ID, budget.Month, budget.Year, budget.Category,
						a.currencies.Format(budget.Amount))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "filter by month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "filter by year")
	return cmd
}

func newBudgetRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.budgets.Delete(ctx, id); err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to delete budget"))
				}
				fmt.Printf("Deleted budget #%d\n", id)
				return nil
			})
		},
	}
}
