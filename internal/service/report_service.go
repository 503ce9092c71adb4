package service

import (
	"context"
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/apierror"
	"github.com/kallesh653/smartcafee-sub000/internal/dto"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error)
	ItemReport(ctx context.Context, filter dto.ReportFilter) (*dto.ItemReportResponse, error)
	CashierReport(ctx context.Context, filter dto.ReportFilter) (*dto.CashierReportResponse, error)
	// ShowReport folds hourly collections into cinema show windows.
	ShowReport(ctx context.Context, filter dto.ReportFilter) (*dto.ShowReportResponse, error)
}

type reportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) ReportService {
	return &reportService{reports: reports}
}

// parseRange resolves the date window. Empty bounds default to today in the
// server's local zone; a reversed range is rejected.
func parseRange(filter dto.ReportFilter) (time.Time, time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from, to := today, today

	var err error
	if filter.From != "" {
		if from, err = time.Parse("2006-01-02", filter.From); err != nil {
			return time.Time{}, time.Time{}, apierror.Validation("invalid from date")
		}
	}
	if filter.To != "" {
		if to, err = time.Parse("2006-01-02", filter.To); err != nil {
			return time.Time{}, time.Time{}, apierror.Validation("invalid to date")
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apierror.Validation("to date precedes from date")
	}
	return from, to, nil
}

const dateLayout = "2006-01-02"

func (s *reportService) SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	from, to, err := parseRange(filter)
	if err != nil {
		return nil, err
	}
	days, err := s.reports.SalesByDate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, d := range days {
		total = total.Add(d.GrandTotal)
	}
	return &dto.SalesReportResponse{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Days:  days,
		Total: total,
	}, nil
}

func (s *reportService) ItemReport(ctx context.Context, filter dto.ReportFilter) (*dto.ItemReportResponse, error) {
	from, to, err := parseRange(filter)
	if err != nil {
		return nil, err
	}
	items, err := s.reports.ItemSales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.ItemReportResponse{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Items: items,
	}, nil
}

func (s *reportService) CashierReport(ctx context.Context, filter dto.ReportFilter) (*dto.CashierReportResponse, error) {
	from, to, err := parseRange(filter)
	if err != nil {
		return nil, err
	}
	cashiers, err := s.reports.CashierSales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.CashierReportResponse{
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
		Cashiers: cashiers,
	}, nil
}

// showWindows maps wall-clock hours to the cinema schedule. Hours 0-6 land in
// second_show (post-midnight screenings bill to the previous evening's show).
var showWindows = []struct {
	name     string
	from, to int // [from, to)
}{
	{"morning", 6, 12},
	{"matinee", 12, 15},
	{"first_show", 15, 18},
	{"evening", 18, 21},
	{"second_show", 21, 24},
}

func showWindowForHour(hour int) string {
	for _, w := range showWindows {
		if hour >= w.from && hour < w.to {
			return w.name
		}
	}
	return "second_show"
}

func (s *reportService) ShowReport(ctx context.Context, filter dto.ReportFilter) (*dto.ShowReportResponse, error) {
	from, to, err := parseRange(filter)
	if err != nil {
		return nil, err
	}
	hours, err := s.reports.HourlyCollection(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totals := map[string]decimal.Decimal{}
	for _, h := range hours {
		window := showWindowForHour(h.Hour)
		totals[window] = totals[window].Add(h.Total)
	}

	resp := &dto.ShowReportResponse{
		From: from.Format(dateLayout),
		To:   to.Format(dateLayout),
	}
	for _, w := range showWindows {
		resp.Shows = append(resp.Shows, dto.ShowCollection{
			Show:  w.name,
			Total: totals[w.name],
		})
	}
	return resp, nil
}
