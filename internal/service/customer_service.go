package service

import (
	"context"
	"sort"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
)

// CustomerService handles borrower records and the customer detail view
type CustomerService struct {
	customerRepo    domain.CustomerRepository
	loanRepo        domain.LoanRepository
	installmentRepo domain.InstallmentRepository
	historyRepo     domain.PaymentHistoryRepository
	settingsRepo    domain.SettingsRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo domain.CustomerRepository, loanRepo domain.LoanRepository, installmentRepo domain.InstallmentRepository, historyRepo domain.PaymentHistoryRepository, settingsRepo domain.SettingsRepository) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		historyRepo:     historyRepo,
		settingsRepo:    settingsRepo,
		now:             time.Now,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *CustomerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CustomerService) publishEvent(tenantID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(tenantID, event)
	}
}

// ListCustomersInput narrows a customer listing
type ListCustomersInput struct {
	Company *string
	Overdue bool
}

// CreateCustomer validates and stores a new customer in the actor's tenant
func (s *CustomerService) CreateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) (*domain.Customer, error) {
	customer.TenantID = actor.TenantID
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.publishEvent(actor.TenantID, websocket.CustomerCreated(created))
	return created, nil
}

// UpdateCustomer replaces the customer's fields
func (s *CustomerService) UpdateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) (*domain.Customer, error) {
	customer.TenantID = actor.TenantID
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.customerRepo.Update(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.publishEvent(actor.TenantID, websocket.CustomerUpdated(updated))
	return updated, nil
}

// DeleteCustomer removes the customer and every loan it owns
func (s *CustomerService) DeleteCustomer(ctx context.Context, actor domain.Actor, id int32) error {
	if err := s.customerRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}
	s.publishEvent(actor.TenantID, websocket.CustomerDeleted(map[string]int32{"id": id}))
	return nil
}

// GetCustomer returns one customer of the tenant
func (s *CustomerService) GetCustomer(ctx context.Context, tenantID int32, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, tenantID, id)
}

// ListCustomers returns customers by name, each with their outstanding balance
func (s *CustomerService) ListCustomers(ctx context.Context, tenantID int32, input ListCustomersInput) ([]domain.CustomerWithBalance, error) {
	filter := domain.CustomerFilter{Company: input.Company}
	if input.Overdue {
		today := domain.DateOnly(s.now())
		filter.InArrearsAsOf = &today
	}
	return listWithBalances(ctx, s.customerRepo, s.installmentRepo, tenantID, filter)
}

// GetDetail returns the customer with loans by most recent due date, installments
// in sequence order, balances, advisory accruals and the payment history
func (s *CustomerService) GetDetail(ctx context.Context, tenantID int32, id int32) (*domain.CustomerDetail, error) {
	customer, err := s.customerRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.List(ctx, tenantID, domain.LoanFilter{CustomerID: &id})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(loans, func(i, j int) bool { return loans[i].DueDate.After(loans[j].DueDate) })

	settings, err := loadSettings(ctx, s.settingsRepo, tenantID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	detail := &domain.CustomerDetail{
		Customer: customer,
		Loans:    make([]domain.LoanDetail, 0, len(loans)),
	}
	var pending []*domain.Installment
	for _, loan := range loans {
		installments, err := s.installmentRepo.ListByLoan(ctx, tenantID, loan.ID)
		if err != nil {
			return nil, err
		}
		detail.Loans = append(detail.Loans, NewLoanDetail(loan, installments, settings, now))
		if !loan.IsSettled() {
			pending = append(pending, installments...)
		}
	}
	detail.Balance = domain.SumOutstanding(pending)

	history, err := s.historyRepo.ListByCustomer(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	detail.History = history
	return detail, nil
}

// listWithBalances loads customers and attaches balances from one outstanding query
func listWithBalances(ctx context.Context, customerRepo domain.CustomerRepository, installmentRepo domain.InstallmentRepository, tenantID int32, filter domain.CustomerFilter) ([]domain.CustomerWithBalance, error) {
	customers, err := customerRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	rows, err := installmentRepo.ListOutstanding(ctx, tenantID, domain.OutstandingFilter{Company: filter.Company})
	if err != nil {
		return nil, err
	}
	balances := BalancesByCustomer(rows)

	out := make([]domain.CustomerWithBalance, len(customers))
	for i, c := range customers {
		out[i] = domain.CustomerWithBalance{Customer: *c, Balance: balanceOr(balances, c.ID)}
	}
	return out, nil
}
