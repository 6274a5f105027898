package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func newExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and manage expenses",
	}
	cmd.AddCommand(newExpenseAddCmd())
	cmd.AddCommand(newExpenseListCmd())
	cmd.AddCommand(newExpenseUpdateCmd())
	cmd.AddCommand(newExpenseRemoveCmd())
	return cmd
}

func newExpenseAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record a new expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				expense, err := a.expenses.Create(ctx, domain.ExpenseDraft{
					Description: args[0],
					Amount:      amount,
					Category:    domain.Category(category),
				})
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to add expense"))
				}
				fmt.Printf("Added expense #%d: %s %s (%s)\n",
					expense.ID, expense.Description, a.currencies.Format(expense.Amount), expense.Category)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", string(domain.CategoryOther), "expense category")
	return cmd
}

func newExpenseListCmd() *cobra.Command {
	var category string
	var month int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				expenses, err := a.expenses.List(ctx, domain.ExpenseFilter{
					Category: domain.Category(category),
					Month:    month,
				})
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to list expenses"))
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
				total := decimal.Zero
				for _, expense := range expenses {
					date := ""
					if !expense.Date.IsZero() {
						date = expense.Date.Format("2006-01-02")
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						expense.ID, date, expense.Description, expense.Category,
						a.currencies.Format(expense.Amount))
					total = total.Add(expense.Amount)
				}
				fmt.Fprintf(w, "\t\t\tTOTAL\t%s\n", a.currencies.Format(total))
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().IntVar(&month, "month", 0, "filter by month (1-12)")
	return cmd
}

func newExpenseUpdateCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "update <id> <description> <amount>",
		Short: "Update an existing expense",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				expense, err := a.expenses.Update(ctx, id, domain.ExpenseDraft{
					Description: args[1],
					Amount:      amount,
					Category:    domain.Category(category),
				})
				if err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to update expense"))
				}
				fmt.Printf("Updated expense #%d\n", expense.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", string(domain.CategoryOther), "expense category")
	return cmd
}

func newExpenseRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.expenses.Delete(ctx, id); err != nil {
					return fmt.Errorf("%s", domain.UserMessage(err, "Failed to delete expense"))
				}
				fmt.Printf("Deleted expense #%d\n", id)
				return nil
			})
		},
	}
}
