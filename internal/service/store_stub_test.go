package service

import (
	"context"

	"github.com/Sevrus/billed/internal/models"
)

// stubStore is a scriptable BillStore recording every call.
type stubStore struct {
	listFn   func(ctx context.Context) ([]models.Bill, error)
	createFn func(ctx context.Context, draft models.BillDraft) (models.BillCreated, error)
	updateFn func(ctx context.Context, bill models.Bill) (models.Bill, error)

	createCalls int
	updateCalls int
	lastCreate  models.BillDraft
	lastUpdate  models.Bill
}

func (s *stubStore) List(ctx context.Context) ([]models.Bill, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) Create(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
	s.createCalls++
	s.lastCreate = draft
	if s.createFn != nil {
		return s.createFn(ctx, draft)
	}
	return models.BillCreated{}, nil
}

func (s *stubStore) Update(ctx context.Context, bill models.Bill) (models.Bill, error) {
	s.updateCalls++
	s.lastUpdate = bill
	if s.updateFn != nil {
		return s.updateFn(ctx, bill)
	}
	return bill, nil
}
