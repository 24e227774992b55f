package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// LoanService handles loan creation, schedule regeneration and loan reads
type LoanService struct {
	loanRepo        domain.LoanRepository
	customerRepo    domain.CustomerRepository
	installmentRepo domain.InstallmentRepository
	settingsRepo    domain.SettingsRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo domain.LoanRepository, customerRepo domain.CustomerRepository, installmentRepo domain.InstallmentRepository, settingsRepo domain.SettingsRepository) *LoanService {
	return &LoanService{
		loanRepo:        loanRepo,
		customerRepo:    customerRepo,
		installmentRepo: installmentRepo,
		settingsRepo:    settingsRepo,
		now:             time.Now,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *LoanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LoanService) publishEvent(tenantID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(tenantID, event)
	}
}

// CreateLoanInput contains input for creating a loan
type CreateLoanInput struct {
	CustomerID  int32
	Description string
	Principal   decimal.Decimal
	RateTier    domain.RateTier
	StartDate   time.Time
}

// RegenerateScheduleInput contains the new parameters of an edited loan
type RegenerateScheduleInput struct {
	Description *string
	Principal   decimal.Decimal
	RateTier    domain.RateTier
	StartDate   time.Time
}

// ListLoansInput narrows a loan listing
type ListLoansInput struct {
	Status     *domain.LoanStatus
	CustomerID *int32
	Overdue    bool
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if len(description) > domain.MaxDescriptionLength {
		return "", domain.ErrLoanDescriptionTooLong
	}
	return description, nil
}

// CreateLoan generates the schedule and stores the loan with all its installments atomically
func (s *LoanService) CreateLoan(ctx context.Context, actor domain.Actor, input CreateLoanInput) (*domain.LoanDetail, error) {
	if input.CustomerID <= 0 {
		return nil, domain.ErrLoanCustomerInvalid
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	schedule, err := GenerateSchedule(input.Principal, input.RateTier, input.StartDate)
	if err != nil {
		return nil, err
	}

	// The customer must belong to the actor's tenant
	if _, err := s.customerRepo.GetByID(ctx, actor.TenantID, input.CustomerID); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		TenantID:         actor.TenantID,
		CustomerID:       input.CustomerID,
		Description:      description,
		OriginalAmount:   input.Principal,
		RateTier:         input.RateTier,
		TotalDue:         schedule.TotalDue,
		PaidAmount:       decimal.Zero,
		Discount:         decimal.Zero,
		Status:           domain.LoanStatusPending,
		DueDate:          schedule.Installments[0].DueDate,
		InstallmentCount: int32(len(schedule.Installments)),
		ChargeType:       domain.ChargeTypeInstallments,
	}
	for _, inst := range schedule.Installments {
		inst.TenantID = actor.TenantID
	}

	created, installments, err := s.loanRepo.CreateWithSchedule(ctx, loan, schedule.Installments)
	if err != nil {
		return nil, err
	}

	detail, err := s.buildDetail(ctx, created, installments)
	if err != nil {
		return nil, err
	}
	s.publishEvent(actor.TenantID, websocket.LoanCreated(detail))
	return detail, nil
}

// RegenerateSchedule discards the loan's installments and history and builds a fresh
// schedule from the new parameters. Paid amount and status reset to zero and pending.
func (s *LoanService) RegenerateSchedule(ctx context.Context, actor domain.Actor, loanID int32, input RegenerateScheduleInput) (*domain.LoanDetail, error) {
	if !actor.Role.IsElevated() {
		return nil, domain.ErrElevatedRole
	}

	schedule, err := GenerateSchedule(input.Principal, input.RateTier, input.StartDate)
	if err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.GetByID(ctx, actor.TenantID, loanID)
	if err != nil {
		return nil, err
	}
	if input.Description != nil {
		description, err := normalizeDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		loan.Description = description
	}

	loan.OriginalAmount = input.Principal
	loan.RateTier = input.RateTier
	loan.TotalDue = schedule.TotalDue
	loan.PaidAmount = decimal.Zero
	loan.Status = domain.LoanStatusPending
	loan.PaidDate = nil
	loan.DueDate = schedule.Installments[0].DueDate
	loan.InstallmentCount = int32(len(schedule.Installments))
	for _, inst := range schedule.Installments {
		inst.TenantID = actor.TenantID
		inst.LoanID = loan.ID
	}

	updated, installments, err := s.loanRepo.RegenerateSchedule(ctx, loan, schedule.Installments)
	if err != nil {
		return nil, err
	}

	detail, err := s.buildDetail(ctx, updated, installments)
	if err != nil {
		return nil, err
	}
	s.publishEvent(actor.TenantID, websocket.LoanRegenerated(detail))
	return detail, nil
}

// GetLoan returns the loan with its schedule, balance and advisory accrual as of today
func (s *LoanService) GetLoan(ctx context.Context, tenantID int32, loanID int32) (*domain.LoanDetail, error) {
	loan, err := s.loanRepo.GetByID(ctx, tenantID, loanID)
	if err != nil {
		return nil, err
	}
	installments, err := s.installmentRepo.ListByLoan(ctx, tenantID, loanID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, loan, installments)
}

// ListLoans returns loans ordered by due date, each with its balance
func (s *LoanService) ListLoans(ctx context.Context, tenantID int32, input ListLoansInput) ([]domain.LoanSummary, error) {
	filter := domain.LoanFilter{
		Status:     input.Status,
		CustomerID: input.CustomerID,
	}
	if input.Overdue {
		today := domain.DateOnly(s.now())
		filter.OverdueAsOf = &today
	}

	loans, err := s.loanRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.installmentRepo.ListOutstanding(ctx, tenantID, domain.OutstandingFilter{CustomerID: input.CustomerID})
	if err != nil {
		return nil, err
	}
	balances := BalancesByLoan(rows)

	out := make([]domain.LoanSummary, len(loans))
	for i, loan := range loans {
		out[i] = domain.LoanSummary{Loan: loan, Balance: balanceOr(balances, loan.ID)}
	}
	return out, nil
}

// DeleteLoan removes the loan and everything it owns
func (s *LoanService) DeleteLoan(ctx context.Context, actor domain.Actor, loanID int32) error {
	if err := s.loanRepo.Delete(ctx, actor.TenantID, loanID); err != nil {
		return err
	}
	s.publishEvent(actor.TenantID, websocket.LoanDeleted(map[string]int32{"id": loanID}))
	return nil
}

// RescheduleInstallment moves one pending installment to a new allowed due date.
// Sibling installments and the loan's own due date are left untouched.
func (s *LoanService) RescheduleInstallment(ctx context.Context, actor domain.Actor, installmentID int32, dueDate time.Time) (*domain.Installment, error) {
	dueDate = domain.DateOnly(dueDate)
	if !domain.IsAllowedDueDate(dueDate) {
		return nil, domain.ErrInvalidDueDate
	}
	inst, err := s.installmentRepo.UpdateDueDate(ctx, actor.TenantID, installmentID, dueDate)
	if err != nil {
		return nil, err
	}
	s.publishEvent(actor.TenantID, websocket.InstallmentUpdated(inst))
	return inst, nil
}

// CalendarEvents renders every loan's due date as a calendar entry
func (s *LoanService) CalendarEvents(ctx context.Context, tenantID int32) ([]domain.CalendarEvent, error) {
	loans, err := s.loanRepo.List(ctx, tenantID, domain.LoanFilter{})
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx, tenantID, domain.CustomerFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[int32]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	events := make([]domain.CalendarEvent, 0, len(loans))
	for _, loan := range loans {
		if loan.DueDate.IsZero() {
			continue
		}
		events = append(events, domain.CalendarEvent{
			Title:      fmt.Sprintf("%s - %s", names[loan.CustomerID], loan.OriginalAmount.StringFixed(2)),
			Start:      loan.DueDate.Format(domain.DateLayout),
			LoanID:     loan.ID,
			CustomerID: loan.CustomerID,
			Date:       loan.DueDate,
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (s *LoanService) buildDetail(ctx context.Context, loan *domain.Loan, installments []*domain.Installment) (*domain.LoanDetail, error) {
	settings, err := loadSettings(ctx, s.settingsRepo, loan.TenantID)
	if err != nil {
		return nil, err
	}
	detail := NewLoanDetail(loan, installments, settings, s.now())
	return &detail, nil
}

// NewLoanDetail assembles the read-time projection of a loan. The balance follows the
// manual penalty path while the accrual follows the tenant rates; the two stay separate.
func NewLoanDetail(loan *domain.Loan, installments []*domain.Installment, settings domain.Settings, asOf time.Time) domain.LoanDetail {
	views := make([]domain.InstallmentView, len(installments))
	for i, inst := range installments {
		views[i] = domain.InstallmentView{
			Installment:   inst,
			UpdatedAmount: inst.UpdatedAmount(),
			Overdue:       inst.IsOverdue(asOf),
		}
	}
	return domain.LoanDetail{
		Loan:         loan,
		Installments: views,
		Balance:      domain.OutstandingBalance(loan, installments),
		Accrual:      ComputeAccrual(LoanAccrualSubject(loan), asOf, settings),
	}
}
