// Package services holds the orchestration layer between storage and
// the presentation frontend.
package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// ReportService assembles the dashboard summary from the expense
// aggregates.
type ReportService struct {
	expenses *storage.Expenses
}

func NewReportService(expenses *storage.Expenses) *ReportService {
	return &ReportService{expenses: expenses}
}

// Summary fans the three aggregate queries out concurrently. The store
// serializes them on its single session; each is a read-only statement,
// so they observe the same committed state either way. ByCategory comes
// back in the fixed display order of the category set.
func (s *ReportService) Summary(ctx context.Context, userID int64) (core.Summary, error) {
	var sum core.Summary

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.expenses.MonthlyTotal(ctx, userID)
		if err != nil {
			return err
		}
		sum.MonthTotal = total
		return nil
	})
	g.Go(func() error {
		total, err := s.expenses.TodayTotal(ctx, userID)
		if err != nil {
			return err
		}
		sum.TodayTotal = total
		return nil
	})
	g.Go(func() error {
		totals, err := s.expenses.CategoryTotals(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range core.Categories() {
			if t, ok := totals[c]; ok {
				sum.ByCategory = append(sum.ByCategory, core.CategoryAmount{Category: c, Total: t})
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}
	return sum, nil
}
