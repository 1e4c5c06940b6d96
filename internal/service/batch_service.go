package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/pricing"
	"github.com/shieldline/warranty-service/internal/store"
)

// StatementGenerator renders a remittance batch as a spreadsheet.
type StatementGenerator interface {
	Generate(st model.RemittanceStatement) ([]byte, error)
}

type BatchService struct {
	stores     store.Stores
	excel      StatementGenerator
	taxRatePct float64
	log        zerolog.Logger
	now        func() time.Time
}

func NewBatchService(stores store.Stores, excel StatementGenerator, taxRatePct float64, log zerolog.Logger) *BatchService {
	return &BatchService{
		stores:     stores,
		excel:      excel,
		taxRatePct: taxRatePct,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. For tests.
func (s *BatchService) WithClock(now func() time.Time) *BatchService {
	s.now = now
	return s
}

// BatchPatch carries the fields an update may touch. Once a batch is CLOSED
// only the status and payment fields stay editable.
type BatchPatch struct {
	Name        *string
	ContractIDs []uuid.UUID
	Status      *model.BatchStatus

	PaymentStatus    *model.PaymentStatus
	PaymentMethod    *model.PaymentMethod
	PaymentReference *string
	PaymentDate      *time.Time
	PaidAt           *time.Time
}

func (p BatchPatch) touchesLockedFields() bool {
	return p.Name != nil || p.ContractIDs != nil
}

func (s *BatchService) List(ctx context.Context, actor model.Principal, filter store.BatchFilter) ([]model.Batch, error) {
	if !actor.IsAdmin() && !actor.IsProvider() {
		if actor.DealershipID == nil {
			return nil, ErrUnauthorized
		}
		filter.DealershipID = actor.DealershipID
	}
	return s.stores.Batches.List(ctx, filter)
}

func (s *BatchService) Get(ctx context.Context, actor model.Principal, id uuid.UUID) (*model.Batch, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, *b) {
		return nil, ErrUnauthorized
	}
	return b, nil
}

// Create opens an ad hoc OPEN batch with no contracts attached yet.
func (s *BatchService) Create(ctx context.Context, actor model.Principal, name string) (*model.Batch, error) {
	if actor.DealershipID == nil {
		return nil, ErrUnauthorized
	}
	now := s.now()
	b := model.Batch{
		ID:              uuid.New(),
		DealershipID:    *actor.DealershipID,
		Name:            name,
		Status:          model.BatchStatusOpen,
		ContractIDs:     []uuid.UUID{},
		PaymentStatus:   model.PaymentStatusUnpaid,
		CreatedByUserID: actor.UserID,
		CreatedByEmail:  actor.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.stores.Batches.Create(ctx, b)
}

// CreateRemittance is the dealer-initiated "submit remittance" action: a
// fully formed CLOSED batch over a finished set of sold contracts, with
// subtotal, tax and total computed here. Each member contract then advances
// SOLD to REMITTED. The contract updates are not atomic with the batch
// write; a failure leaves the batch in place and is logged, not rolled back.
func (s *BatchService) CreateRemittance(ctx context.Context, actor model.Principal, name string, contractIDs []uuid.UUID) (*model.Batch, error) {
	if actor.DealershipID == nil {
		return nil, ErrUnauthorized
	}
	if len(contractIDs) == 0 {
		return nil, fmt.Errorf("%w: a remittance needs at least one contract", ErrValidation)
	}

	contracts, err := s.stores.Contracts.List(ctx, store.ContractFilter{IDs: contractIDs})
	if err != nil {
		return nil, err
	}
	if len(contracts) != len(contractIDs) {
		return nil, fmt.Errorf("%w: one or more contracts do not exist", ErrValidation)
	}

	var subtotal int64
	for _, c := range contracts {
		if c.DealershipID != *actor.DealershipID {
			return nil, ErrUnauthorized
		}
		if c.Status != model.ContractStatusSold {
			return nil, fmt.Errorf("%w: contract %s is %s, expected SOLD", ErrValidation, c.WarrantyID, c.Status)
		}
		if c.PricingDealerCostCents != nil {
			subtotal += *c.PricingDealerCostCents
		}
		subtotal += c.AddonTotalCostCents
	}

	now := s.now()
	tax := pricing.TaxCents(subtotal, s.taxRatePct)
	b := model.Batch{
		ID:              uuid.New(),
		DealershipID:    *actor.DealershipID,
		Name:            name,
		Status:          model.BatchStatusClosed,
		ContractIDs:     contractIDs,
		SubtotalCents:   subtotal,
		TaxRatePct:      s.taxRatePct,
		TaxCents:        tax,
		TotalCents:      subtotal + tax,
		PaymentStatus:   model.PaymentStatusUnpaid,
		CreatedByUserID: actor.UserID,
		CreatedByEmail:  actor.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.stores.Batches.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	remitted := model.ContractStatusRemitted
	for _, c := range contracts {
		if err := s.advanceContract(ctx, actor, c, remitted); err != nil {
			s.log.Error().Err(err).
				Str("batch_id", created.ID.String()).
				Str("contract_id", c.ID.String()).
				Msg("failed to advance contract after remittance creation")
		}
	}
	return created, nil
}

// Update applies a patch under the batch lock: once CLOSED, any field outside
// the status/payment whitelist fails with Locked and leaves the record
// unchanged.
func (s *BatchService) Update(ctx context.Context, actor model.Principal, id uuid.UUID, patch BatchPatch) (*model.Batch, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsDealership(b.DealershipID) {
		return nil, ErrUnauthorized
	}

	if b.Status == model.BatchStatusClosed && patch.touchesLockedFields() {
		return nil, fmt.Errorf("%w: batch is closed", ErrLocked)
	}

	if b.Status == model.BatchStatusOpen {
		if patch.Name != nil {
			b.Name = *patch.Name
		}
		if patch.ContractIDs != nil {
			b.ContractIDs = patch.ContractIDs
		}
	}
	if patch.Status != nil && *patch.Status != b.Status {
		// OPEN -> CLOSED only; a closed batch never reopens.
		if b.Status != model.BatchStatusOpen || *patch.Status != model.BatchStatusClosed {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, *patch.Status)
		}
		b.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		b.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaymentMethod != nil {
		b.PaymentMethod = patch.PaymentMethod
	}
	if patch.PaymentReference != nil {
		b.PaymentReference = patch.PaymentReference
	}
	if patch.PaymentDate != nil {
		b.PaymentDate = patch.PaymentDate
	}
	if patch.PaidAt != nil {
		b.PaidAt = patch.PaidAt
	}

	b.UpdatedAt = s.now()
	return s.stores.Batches.Update(ctx, *b)
}

// Approve moves a submitted remittance into APPROVED. Provider workflow.
func (s *BatchService) Approve(ctx context.Context, actor model.Principal, id uuid.UUID) (*model.Batch, error) {
	return s.review(ctx, actor, id, model.RemittanceStatusApproved, nil)
}

// Reject moves a submitted remittance into REJECTED with a reason.
func (s *BatchService) Reject(ctx context.Context, actor model.Principal, id uuid.UUID, reason string) (*model.Batch, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrValidation)
	}
	return s.review(ctx, actor, id, model.RemittanceStatusRejected, &reason)
}

func (s *BatchService) review(ctx context.Context, actor model.Principal, id uuid.UUID, target model.RemittanceStatus, reason *string) (*model.Batch, error) {
	if !actor.IsProvider() && !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.EffectiveRemittanceStatus() != model.RemittanceStatusSubmitted {
		return nil, fmt.Errorf("%w: remittance is %s, expected SUBMITTED", ErrInvalidTransition, b.EffectiveRemittanceStatus())
	}

	b.RemittanceStatus = &target
	b.RejectionReason = reason
	b.UpdatedAt = s.now()
	return s.stores.Batches.Update(ctx, *b)
}

type MarkPaidInput struct {
	Method    model.PaymentMethod
	Reference string
	Date      time.Time
}

// MarkPaid settles a batch. A payment method and date are required before
// anything is persisted. Member contracts advance REMITTED to PAID
// afterwards, best effort.
func (s *BatchService) MarkPaid(ctx context.Context, actor model.Principal, id uuid.UUID, input MarkPaidInput) (*model.Batch, error) {
	if input.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	if input.Method != model.PaymentMethodEFT && input.Method != model.PaymentMethodCheque {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, input.Method)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", ErrValidation)
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsDealership(b.DealershipID) && !actor.IsProvider() {
		return nil, ErrUnauthorized
	}

	now := s.now()
	paid := model.RemittanceStatusPaid
	b.PaymentStatus = model.PaymentStatusPaid
	b.PaymentMethod = &input.Method
	if input.Reference != "" {
		b.PaymentReference = &input.Reference
	}
	b.PaymentDate = &input.Date
	b.PaidByUserID = &actor.UserID
	email := actor.Email
	b.PaidByEmail = &email
	b.PaidAt = &now
	b.RemittanceStatus = &paid
	b.UpdatedAt = now

	updated, err := s.stores.Batches.Update(ctx, *b)
	if err != nil {
		return nil, err
	}

	contracts, err := s.stores.Contracts.List(ctx, store.ContractFilter{IDs: b.ContractIDs})
	if err == nil {
		for _, c := range contracts {
			if c.Status != model.ContractStatusRemitted {
				continue
			}
			if err := s.advanceContract(ctx, actor, c, model.ContractStatusPaid); err != nil {
				s.log.Error().Err(err).
					Str("batch_id", b.ID.String()).
					Str("contract_id", c.ID.String()).
					Msg("failed to advance contract after payment")
			}
		}
	}
	return updated, nil
}

type StatementResult struct {
	FileName string
	Content  []byte
}

// Statement renders the remittance statement spreadsheet for a batch.
func (s *BatchService) Statement(ctx context.Context, actor model.Principal, id uuid.UUID) (*StatementResult, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	dealership, err := s.stores.Dealerships.Get(ctx, b.DealershipID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	contracts, err := s.stores.Contracts.List(ctx, store.ContractFilter{IDs: b.ContractIDs})
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(model.RemittanceStatement{
		Batch:      *b,
		Dealership: *dealership,
		Contracts:  contracts,
	})
	if err != nil {
		return nil, err
	}
	return &StatementResult{
		FileName: fmt.Sprintf("remittance-%s-%s.xlsx",
			sanitizeFileName(dealership.Name), b.CreatedAt.Format("20060102")),
		Content: content,
	}, nil
}

func (s *BatchService) advanceContract(ctx context.Context, actor model.Principal, c model.Contract, target model.ContractStatus) error {
	now := s.now()
	email := actor.Email
	switch target {
	case model.ContractStatusRemitted:
		if model.NextStatus(c.Status) != target {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, target)
		}
		c.RemittedByUserID = &actor.UserID
		c.RemittedByEmail = &email
		c.RemittedAt = &now
	case model.ContractStatusPaid:
		if model.NextStatus(c.Status) != target {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, target)
		}
		c.PaidByUserID = &actor.UserID
		c.PaidByEmail = &email
		c.PaidAt = &now
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, target)
	}
	c.Status = target
	c.UpdatedAt = now
	_, err := s.stores.Contracts.Update(ctx, c)
	return err
}

func (s *BatchService) canView(actor model.Principal, b model.Batch) bool {
	if actor.IsAdmin() || actor.IsProvider() {
		return true
	}
	return actor.OwnsDealership(b.DealershipID)
}

func (s *BatchService) load(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	b, err := s.stores.Batches.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return b, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
