package service

import (
	"context"
	"sort"
	"time"

	"github.com/Sevrus/billed/internal/dto"
	"github.com/Sevrus/billed/internal/models"

	"go.uber.org/zap"
)

// BillsService produces the employee's bill list: fetched from the
// store, most recent first, dates and statuses localized.
type BillsService struct {
	store  BillStore
	logger *zap.Logger
}

func NewBillsService(store BillStore, logger *zap.Logger) *BillsService {
	return &BillsService{
		store:  store,
		logger: logger,
	}
}

// ListBills returns the bills sorted descending by date. A record
// whose date does not parse keeps its raw date string in the output;
// among themselves such records have no defined order (an unparsable
// date has no timestamp to compare). A store failure propagates
// unmodified to the caller.
func (s *BillsService) ListBills(ctx context.Context) ([]dto.DisplayBill, error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	// Each bill travels with its own sort key so swaps keep them paired.
	type datedBill struct {
		bill models.Bill
		ts   time.Time
	}
	dated := make([]datedBill, 0, len(bills))
	for _, b := range bills {
		ts, _ := time.Parse("2006-01-02", b.Date)
		dated = append(dated, datedBill{bill: b, ts: ts})
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ts.After(dated[j].ts)
	})

	display := make([]dto.DisplayBill, 0, len(dated))
	for _, d := range dated {
		display = append(display, s.toDisplay(d.bill))
	}

	return display, nil
}

func (s *BillsService) toDisplay(b models.Bill) dto.DisplayBill {
	date, err := FormatDate(b.Date)
	if err != nil {
		// Corrupted date on this record only: show it raw rather than
		// failing the whole list.
		s.logger.Warn("Unformattable bill date",
			zap.String("bill_id", b.ID),
			zap.Error(err),
		)
		date = b.Date
	}

	return dto.DisplayBill{
		ID:           b.ID,
		Type:         b.Type,
		Name:         b.Name,
		Date:         date,
		RawDate:      b.Date,
		Amount:       b.Amount,
		VAT:          b.VAT,
		Pct:          b.Pct,
		Commentary:   b.Commentary,
		CommentAdmin: b.CommentAdmin,
		Status:       FormatStatus(string(b.Status)),
		FileURL:      b.FileURL,
		FileName:     b.FileName,
		Email:        b.Email,
	}
}
