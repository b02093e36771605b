package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
)

type settlementRepository struct {
	store record.Store
}

func NewSettlementRepository(store record.Store) settlement.SettlementRepository {
	return &settlementRepository{store: store}
}

func withSettlementVersion(s *settlement.Settlement, v int64) { s.Version = v }

// Create implements settlement.SettlementRepository.
func (r *settlementRepository) Create(ctx context.Context, s settlement.Settlement) (settlement.Settlement, error) {
	s.ID = record.SettlementKey(s.EmployeeID, s.GeneratedAt)

	data, err := encode(s)
	if err != nil {
		return settlement.Settlement{}, err
	}
	if err := r.store.Create(ctx, s.ID, data); err != nil {
		if errors.Is(err, record.ErrKeyExists) {
			return settlement.Settlement{}, settlement.ErrSettlementExists
		}
		return settlement.Settlement{}, fmt.Errorf("failed to create settlement: %w", err)
	}

	s.Version = 1
	return s, nil
}

// Update implements settlement.SettlementRepository.
func (r *settlementRepository) Update(ctx context.Context, s settlement.Settlement) (settlement.Settlement, error) {
	version, err := swap(ctx, r.store, s.ID, s.Version, s)
	if err != nil {
		return settlement.Settlement{}, err
	}
	s.Version = version
	return s, nil
}

// ListByEmployee implements settlement.SettlementRepository.
func (r *settlementRepository) ListByEmployee(ctx context.Context, employeeID string) ([]settlement.Settlement, error) {
	return scan(ctx, r.store, record.SettlementEmployeePrefix(employeeID), withSettlementVersion)
}

// ListAll implements settlement.SettlementRepository.
func (r *settlementRepository) ListAll(ctx context.Context) ([]settlement.Settlement, error) {
	return scan(ctx, r.store, record.PrefixSettlement, withSettlementVersion)
}
