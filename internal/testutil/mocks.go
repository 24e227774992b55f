package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockStore wires every mock repository to shared state so that cascades,
// outstanding listings and ledger operations see each other's rows
type MockStore struct {
	Tenants       *MockTenantRepository
	Operators     *MockOperatorRepository
	Customers     *MockCustomerRepository
	Loans         *MockLoanRepository
	Installments  *MockInstallmentRepository
	Payments      *MockPaymentRepository
	History       *MockPaymentHistoryRepository
	Notifications *MockNotificationRepository
	Settings      *MockSettingsRepository
	Ledger        *MockLedgerRepository
}

// NewMockStore creates a MockStore with empty repositories
func NewMockStore() *MockStore {
	s := &MockStore{
		Tenants:       NewMockTenantRepository(),
		Operators:     NewMockOperatorRepository(),
		Customers:     NewMockCustomerRepository(),
		Loans:         NewMockLoanRepository(),
		Installments:  NewMockInstallmentRepository(),
		Payments:      NewMockPaymentRepository(),
		History:       NewMockPaymentHistoryRepository(),
		Notifications: NewMockNotificationRepository(),
		Settings:      NewMockSettingsRepository(),
	}
	s.Customers.Loans = s.Loans
	s.Customers.Installments = s.Installments
	s.Loans.Installments = s.Installments
	s.Loans.Payments = s.Payments
	s.Loans.History = s.History
	s.Loans.Notifications = s.Notifications
	s.Installments.Loans = s.Loans
	s.Installments.Customers = s.Customers
	s.History.Loans = s.Loans
	s.Ledger = &MockLedgerRepository{
		Loans:         s.Loans,
		Installments:  s.Installments,
		Payments:      s.Payments,
		History:       s.History,
		Notifications: s.Notifications,
	}
	return s
}

// MockTenantRepository is a mock implementation of domain.TenantRepository
type MockTenantRepository struct {
	Tenants map[int32]*domain.Tenant
	NextID  int32
}

// NewMockTenantRepository creates a new MockTenantRepository
func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{
		Tenants: make(map[int32]*domain.Tenant),
		NextID:  1,
	}
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	if t, ok := m.Tenants[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTenantNotFound
}

func (m *MockTenantRepository) GetByName(ctx context.Context, name string) (*domain.Tenant, error) {
	for _, t := range m.Tenants {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	tenant.ID = m.NextID
	m.NextID++
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = tenant.CreatedAt
	m.Tenants[tenant.ID] = tenant
	return tenant, nil
}

// AddTenant adds a tenant to the mock repository (helper for tests)
func (m *MockTenantRepository) AddTenant(tenant *domain.Tenant) {
	m.Tenants[tenant.ID] = tenant
	if tenant.ID >= m.NextID {
		m.NextID = tenant.ID + 1
	}
}

// MockOperatorRepository is a mock implementation of domain.OperatorRepository
type MockOperatorRepository struct {
	Operators      map[uuid.UUID]*domain.Operator
	GetByAuth0IDFn func(auth0ID string) (*domain.Operator, error)
}

// NewMockOperatorRepository creates a new MockOperatorRepository
func NewMockOperatorRepository() *MockOperatorRepository {
	return &MockOperatorRepository{
		Operators: make(map[uuid.UUID]*domain.Operator),
	}
}

func (m *MockOperatorRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.Operator, error) {
	if m.GetByAuth0IDFn != nil {
		return m.GetByAuth0IDFn(auth0ID)
	}
	for _, o := range m.Operators {
		if o.Auth0ID == auth0ID {
			return o, nil
		}
	}
	return nil, domain.ErrOperatorNotFound
}

func (m *MockOperatorRepository) GetByID(ctx context.Context, tenantID int32, id uuid.UUID) (*domain.Operator, error) {
	if o, ok := m.Operators[id]; ok && o.TenantID == tenantID {
		return o, nil
	}
	return nil, domain.ErrOperatorNotFound
}

func (m *MockOperatorRepository) ListByTenant(ctx context.Context, tenantID int32) ([]*domain.Operator, error) {
	var out []*domain.Operator
	for _, o := range m.Operators {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockOperatorRepository) Create(ctx context.Context, operator *domain.Operator) (*domain.Operator, error) {
	if err := m.checkUnique(operator); err != nil {
		return nil, err
	}
	if operator.ID == uuid.Nil {
		operator.ID = uuid.New()
	}
	operator.CreatedAt = time.Now()
	operator.UpdatedAt = operator.CreatedAt
	m.Operators[operator.ID] = operator
	return operator, nil
}

func (m *MockOperatorRepository) Update(ctx context.Context, operator *domain.Operator) (*domain.Operator, error) {
	existing, ok := m.Operators[operator.ID]
	if !ok || existing.TenantID != operator.TenantID {
		return nil, domain.ErrOperatorNotFound
	}
	if err := m.checkUnique(operator); err != nil {
		return nil, err
	}
	operator.UpdatedAt = time.Now()
	m.Operators[operator.ID] = operator
	return operator, nil
}

func (m *MockOperatorRepository) Delete(ctx context.Context, tenantID int32, id uuid.UUID) error {
	o, ok := m.Operators[id]
	if !ok || o.TenantID != tenantID {
		return domain.ErrOperatorNotFound
	}
	delete(m.Operators, id)
	return nil
}

func (m *MockOperatorRepository) checkUnique(operator *domain.Operator) error {
	for _, o := range m.Operators {
		if o.ID == operator.ID {
			continue
		}
		if o.Auth0ID == operator.Auth0ID {
			return domain.ErrOperatorAuth0IDTaken
		}
		if o.TenantID == operator.TenantID && o.Email == operator.Email {
			return domain.ErrOperatorEmailTaken
		}
	}
	return nil
}

// AddOperator adds an operator to the mock repository (helper for tests)
func (m *MockOperatorRepository) AddOperator(operator *domain.Operator) {
	if operator.ID == uuid.Nil {
		operator.ID = uuid.New()
	}
	m.Operators[operator.ID] = operator
}

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	Customers    map[int32]*domain.Customer
	NextID       int32
	Loans        *MockLoanRepository
	Installments *MockInstallmentRepository
	ListFn       func(tenantID int32, filter domain.CustomerFilter) ([]*domain.Customer, error)
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Customers: make(map[int32]*domain.Customer),
		NextID:    1,
	}
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if m.taxIDTaken(customer) {
		return nil, domain.ErrCustomerTaxIDTaken
	}
	customer.ID = m.NextID
	m.NextID++
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	m.Customers[customer.ID] = customer
	return customer, nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, tenantID int32, id int32) (*domain.Customer, error) {
	if c, ok := m.Customers[id]; ok && c.TenantID == tenantID {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) List(ctx context.Context, tenantID int32, filter domain.CustomerFilter) ([]*domain.Customer, error) {
	if m.ListFn != nil {
		return m.ListFn(tenantID, filter)
	}
	var out []*domain.Customer
	for _, c := range m.Customers {
		if c.TenantID != tenantID {
			continue
		}
		if filter.Company != nil && (c.Company == nil || *c.Company != *filter.Company) {
			continue
		}
		if filter.InArrearsAsOf != nil && !m.inArrears(tenantID, c.ID, *filter.InArrearsAsOf) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	existing, ok := m.Customers[customer.ID]
	if !ok || existing.TenantID != customer.TenantID {
		return nil, domain.ErrCustomerNotFound
	}
	if m.taxIDTaken(customer) {
		return nil, domain.ErrCustomerTaxIDTaken
	}
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()
	m.Customers[customer.ID] = customer
	return customer, nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, tenantID int32, id int32) error {
	c, ok := m.Customers[id]
	if !ok || c.TenantID != tenantID {
		return domain.ErrCustomerNotFound
	}
	if m.Loans != nil {
		for _, l := range m.Loans.Loans {
			if l.TenantID == tenantID && l.CustomerID == id {
				m.Loans.cascade(l.ID)
			}
		}
	}
	delete(m.Customers, id)
	return nil
}

func (m *MockCustomerRepository) Count(ctx context.Context, tenantID int32, company *string) (int64, error) {
	var n int64
	for _, c := range m.Customers {
		if c.TenantID != tenantID {
			continue
		}
		if company != nil && (c.Company == nil || *c.Company != *company) {
			continue
		}
		n++
	}
	return n, nil
}

func (m *MockCustomerRepository) taxIDTaken(customer *domain.Customer) bool {
	for _, c := range m.Customers {
		if c.ID != customer.ID && c.TenantID == customer.TenantID && c.TaxID == customer.TaxID {
			return true
		}
	}
	return false
}

func (m *MockCustomerRepository) inArrears(tenantID, customerID int32, asOf time.Time) bool {
	if m.Loans == nil || m.Installments == nil {
		return false
	}
	for _, inst := range m.Installments.Installments {
		loan, ok := m.Loans.Loans[inst.LoanID]
		if !ok || loan.TenantID != tenantID || loan.CustomerID != customerID {
			continue
		}
		if inst.IsOverdue(asOf) {
			return true
		}
	}
	return false
}

// AddCustomer adds a customer to the mock repository (helper for tests)
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) {
	if customer.ID == 0 {
		customer.ID = m.NextID
	}
	if customer.ID >= m.NextID {
		m.NextID = customer.ID + 1
	}
	m.Customers[customer.ID] = customer
}

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	Loans                map[int32]*domain.Loan
	NextID               int32
	Installments         *MockInstallmentRepository
	Payments             *MockPaymentRepository
	History              *MockPaymentHistoryRepository
	Notifications        *MockNotificationRepository
	CreateWithScheduleFn func(loan *domain.Loan, installments []*domain.Installment) (*domain.Loan, []*domain.Installment, error)
	RegenerateFn         func(loan *domain.Loan, installments []*domain.Installment) (*domain.Loan, []*domain.Installment, error)
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		Loans:  make(map[int32]*domain.Loan),
		NextID: 1,
	}
}

func (m *MockLoanRepository) CreateWithSchedule(ctx context.Context, loan *domain.Loan, installments []*domain.Installment) (*domain.Loan, []*domain.Installment, error) {
	if m.CreateWithScheduleFn != nil {
		return m.CreateWithScheduleFn(loan, installments)
	}
	loan.ID = m.NextID
	m.NextID++
	loan.CreatedAt = time.Now()
	loan.UpdatedAt = loan.CreatedAt
	m.Loans[loan.ID] = loan
	m.storeInstallments(loan, installments)
	return loan, installments, nil
}

func (m *MockLoanRepository) RegenerateSchedule(ctx context.Context, loan *domain.Loan, installments []*domain.Installment) (*domain.Loan, []*domain.Installment, error) {
	if m.RegenerateFn != nil {
		return m.RegenerateFn(loan, installments)
	}
	existing, ok := m.Loans[loan.ID]
	if !ok || existing.TenantID != loan.TenantID {
		return nil, nil, domain.ErrLoanNotFound
	}
	if m.Installments != nil {
		m.Installments.deleteByLoan(loan.ID)
	}
	if m.History != nil {
		m.History.deleteByLoan(loan.ID)
	}
	loan.UpdatedAt = time.Now()
	m.Loans[loan.ID] = loan
	m.storeInstallments(loan, installments)
	return loan, installments, nil
}

func (m *MockLoanRepository) storeInstallments(loan *domain.Loan, installments []*domain.Installment) {
	if m.Installments == nil {
		return
	}
	for _, inst := range installments {
		inst.TenantID = loan.TenantID
		inst.LoanID = loan.ID
		m.Installments.AddInstallment(inst)
	}
}

func (m *MockLoanRepository) GetByID(ctx context.Context, tenantID int32, id int32) (*domain.Loan, error) {
	if l, ok := m.Loans[id]; ok && l.TenantID == tenantID {
		return l, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) List(ctx context.Context, tenantID int32, filter domain.LoanFilter) ([]*domain.Loan, error) {
	var out []*domain.Loan
	for _, l := range m.Loans {
		if l.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && l.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.OverdueAsOf != nil && !l.IsOverdue(*filter.OverdueAsOf) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockLoanRepository) Count(ctx context.Context, tenantID int32, filter domain.LoanFilter) (int64, error) {
	filter.Limit = 0
	loans, err := m.List(ctx, tenantID, filter)
	return int64(len(loans)), err
}

func (m *MockLoanRepository) Delete(ctx context.Context, tenantID int32, id int32) error {
	l, ok := m.Loans[id]
	if !ok || l.TenantID != tenantID {
		return domain.ErrLoanNotFound
	}
	m.cascade(id)
	return nil
}

func (m *MockLoanRepository) cascade(loanID int32) {
	if m.Installments != nil {
		m.Installments.deleteByLoan(loanID)
	}
	if m.Payments != nil {
		delete(m.Payments.Payments, loanID)
	}
	if m.History != nil {
		m.History.deleteByLoan(loanID)
	}
	if m.Notifications != nil {
		m.Notifications.deleteByLoan(loanID)
	}
	delete(m.Loans, loanID)
}

// AddLoan adds a loan to the mock repository (helper for tests)
func (m *MockLoanRepository) AddLoan(loan *domain.Loan) {
	if loan.ID == 0 {
		loan.ID = m.NextID
	}
	if loan.ID >= m.NextID {
		m.NextID = loan.ID + 1
	}
	m.Loans[loan.ID] = loan
}

// MockInstallmentRepository is a mock implementation of domain.InstallmentRepository
type MockInstallmentRepository struct {
	Installments map[int32]*domain.Installment
	NextID       int32
	Loans        *MockLoanRepository
	Customers    *MockCustomerRepository
}

// NewMockInstallmentRepository creates a new MockInstallmentRepository
func NewMockInstallmentRepository() *MockInstallmentRepository {
	return &MockInstallmentRepository{
		Installments: make(map[int32]*domain.Installment),
		NextID:       1,
	}
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, tenantID int32, id int32) (*domain.Installment, error) {
	if inst, ok := m.Installments[id]; ok && inst.TenantID == tenantID {
		return inst, nil
	}
	return nil, domain.ErrInstallmentNotFound
}

func (m *MockInstallmentRepository) ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Installment, error) {
	var out []*domain.Installment
	for _, inst := range m.Installments {
		if inst.TenantID == tenantID && inst.LoanID == loanID {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	return out, nil
}

func (m *MockInstallmentRepository) ListOutstanding(ctx context.Context, tenantID int32, filter domain.OutstandingFilter) ([]*domain.OutstandingInstallment, error) {
	var out []*domain.OutstandingInstallment
	for _, inst := range m.Installments {
		if inst.TenantID != tenantID || inst.IsPaid() || m.Loans == nil {
			continue
		}
		loan, ok := m.Loans.Loans[inst.LoanID]
		if !ok || loan.TenantID != tenantID || loan.IsSettled() {
			continue
		}
		if filter.CustomerID != nil && loan.CustomerID != *filter.CustomerID {
			continue
		}
		var company *string
		if m.Customers != nil {
			if c, ok := m.Customers.Customers[loan.CustomerID]; ok {
				company = c.Company
			}
		}
		if filter.Company != nil && (company == nil || *company != *filter.Company) {
			continue
		}
		out = append(out, &domain.OutstandingInstallment{
			Installment: inst,
			CustomerID:  loan.CustomerID,
			Company:     company,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockInstallmentRepository) UpdateManualPenalty(ctx context.Context, tenantID int32, id int32, penalty *decimal.Decimal) (*domain.Installment, error) {
	inst, err := m.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	inst.ManualPenalty = penalty
	inst.UpdatedAt = time.Now()
	return inst, nil
}

func (m *MockInstallmentRepository) UpdateDueDate(ctx context.Context, tenantID int32, id int32, dueDate time.Time) (*domain.Installment, error) {
	inst, err := m.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if inst.IsPaid() {
		return nil, domain.ErrAlreadySettled
	}
	inst.DueDate = dueDate
	inst.UpdatedAt = time.Now()
	return inst, nil
}

func (m *MockInstallmentRepository) deleteByLoan(loanID int32) {
	for id, inst := range m.Installments {
		if inst.LoanID == loanID {
			delete(m.Installments, id)
		}
	}
}

// AddInstallment adds an installment to the mock repository (helper for tests)
func (m *MockInstallmentRepository) AddInstallment(inst *domain.Installment) {
	if inst.ID == 0 {
		inst.ID = m.NextID
	}
	if inst.ID >= m.NextID {
		m.NextID = inst.ID + 1
	}
	m.Installments[inst.ID] = inst
}

// MockPaymentRepository is a mock implementation of domain.PaymentRepository.
// Payments are keyed by loan id.
type MockPaymentRepository struct {
	Payments map[int32][]*domain.Payment
	NextID   int32
}

// NewMockPaymentRepository creates a new MockPaymentRepository
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		Payments: make(map[int32][]*domain.Payment),
		NextID:   1,
	}
}

func (m *MockPaymentRepository) ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range m.Payments[loanID] {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PaidOn.Equal(out[j].PaidOn) {
			return out[i].PaidOn.After(out[j].PaidOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MockPaymentRepository) SumReceivedSince(ctx context.Context, tenantID int32, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, payments := range m.Payments {
		for _, p := range payments {
			if p.TenantID == tenantID && !p.PaidOn.Before(since) {
				total = total.Add(p.Amount)
			}
		}
	}
	return total, nil
}

func (m *MockPaymentRepository) add(p *domain.Payment) {
	p.ID = m.NextID
	m.NextID++
	p.CreatedAt = time.Now()
	m.Payments[p.LoanID] = append(m.Payments[p.LoanID], p)
}

// MockPaymentHistoryRepository is a mock implementation of domain.PaymentHistoryRepository
type MockPaymentHistoryRepository struct {
	Entries []*domain.PaymentHistory
	NextID  int32
	Loans   *MockLoanRepository
}

// NewMockPaymentHistoryRepository creates a new MockPaymentHistoryRepository
func NewMockPaymentHistoryRepository() *MockPaymentHistoryRepository {
	return &MockPaymentHistoryRepository{NextID: 1}
}

func (m *MockPaymentHistoryRepository) ListByCustomer(ctx context.Context, tenantID int32, customerID int32) ([]*domain.PaymentHistoryEntry, error) {
	var out []*domain.PaymentHistoryEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		h := m.Entries[i]
		if h.TenantID != tenantID || h.CustomerID != customerID {
			continue
		}
		entry := &domain.PaymentHistoryEntry{PaymentHistory: *h}
		if m.Loans != nil {
			if l, ok := m.Loans.Loans[h.LoanID]; ok {
				entry.LoanDescription = l.Description
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// ForLoan returns the loan's history rows (helper for tests)
func (m *MockPaymentHistoryRepository) ForLoan(loanID int32) []*domain.PaymentHistory {
	var out []*domain.PaymentHistory
	for _, h := range m.Entries {
		if h.LoanID == loanID {
			out = append(out, h)
		}
	}
	return out
}

func (m *MockPaymentHistoryRepository) add(h *domain.PaymentHistory) {
	h.ID = m.NextID
	m.NextID++
	h.CreatedAt = time.Now()
	m.Entries = append(m.Entries, h)
}

func (m *MockPaymentHistoryRepository) deleteByLoan(loanID int32) {
	kept := m.Entries[:0]
	for _, h := range m.Entries {
		if h.LoanID != loanID {
			kept = append(kept, h)
		}
	}
	m.Entries = kept
}

// MockNotificationRepository is a mock implementation of domain.NotificationRepository
type MockNotificationRepository struct {
	Notifications []*domain.Notification
	NextID        int32
}

// NewMockNotificationRepository creates a new MockNotificationRepository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{NextID: 1}
}

func (m *MockNotificationRepository) ListByLoan(ctx context.Context, tenantID int32, loanID int32) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for i := len(m.Notifications) - 1; i >= 0; i-- {
		if n := m.Notifications[i]; n.TenantID == tenantID && n.LoanID == loanID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockNotificationRepository) add(n *domain.Notification) {
	n.ID = m.NextID
	m.NextID++
	n.CreatedAt = time.Now()
	m.Notifications = append(m.Notifications, n)
}

func (m *MockNotificationRepository) deleteByLoan(loanID int32) {
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if n.LoanID != loanID {
			kept = append(kept, n)
		}
	}
	m.Notifications = kept
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	Values   map[int32]map[string]string
	GetCalls int
	GetFn    func(tenantID int32) (map[string]string, error)
	UpsertFn func(tenantID int32, values map[string]string) error
}

// NewMockSettingsRepository creates a new MockSettingsRepository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		Values: make(map[int32]map[string]string),
	}
}

func (m *MockSettingsRepository) Get(ctx context.Context, tenantID int32) (map[string]string, error) {
	m.GetCalls++
	if m.GetFn != nil {
		return m.GetFn(tenantID)
	}
	out := make(map[string]string, len(m.Values[tenantID]))
	for k, v := range m.Values[tenantID] {
		out[k] = v
	}
	return out, nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, tenantID int32, values map[string]string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(tenantID, values)
	}
	if m.Values[tenantID] == nil {
		m.Values[tenantID] = make(map[string]string)
	}
	for k, v := range values {
		m.Values[tenantID][k] = v
	}
	return nil
}

// MockLedgerRepository is a mock implementation of domain.LedgerRepository.
// It applies the same domain transitions as the postgres ledger under a single lock.
type MockLedgerRepository struct {
	mu            sync.Mutex
	Loans         *MockLoanRepository
	Installments  *MockInstallmentRepository
	Payments      *MockPaymentRepository
	History       *MockPaymentHistoryRepository
	Notifications *MockNotificationRepository
	// FailWith makes every operation fail before any row is touched
	FailWith error
}

func (m *MockLedgerRepository) ApplyGenericPayment(ctx context.Context, tenantID int32, loanID int32, input domain.GenericPaymentInput) (*domain.GenericPaymentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	loan, err := m.Loans.GetByID(ctx, tenantID, loanID)
	if err != nil {
		return nil, err
	}
	payment, history := domain.NewGenericPaymentRecords(loan, input)
	loan.RecordPayment(input.Amount)
	m.Payments.add(payment)
	m.History.add(history)

	return &domain.GenericPaymentResult{Loan: loan, Payment: payment, History: history}, nil
}

func (m *MockLedgerRepository) SettleInstallment(ctx context.Context, tenantID int32, installmentID int32, input domain.SettlementInput) (*domain.SettlementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	inst, err := m.Installments.GetByID(ctx, tenantID, installmentID)
	if err != nil {
		return nil, err
	}
	loan, err := m.Loans.GetByID(ctx, tenantID, inst.LoanID)
	if err != nil {
		return nil, err
	}
	if err := inst.Settle(input.PaidOn, input.Method); err != nil {
		return nil, err
	}
	loan.RecordPayment(inst.Amount)
	history := domain.NewSettlementHistory(loan, inst, input)
	m.History.add(history)

	result := &domain.SettlementResult{Installment: inst, Loan: loan, History: history}
	if loan.CloseIfSettled(input.PaidOn) {
		n := domain.NewLoanPaidNotification(loan, time.Now())
		m.Notifications.add(n)
		result.LoanClosed = true
		result.Notification = n
	}
	return result, nil
}

// MockEventPublisher records published events per tenant
type MockEventPublisher struct {
	mu     sync.Mutex
	Events map[int32][]string
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{Events: make(map[int32][]string)}
}

// Types returns the event type names published to a tenant, in order
func (m *MockEventPublisher) Types(tenantID int32) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Events[tenantID]...)
}

// Publish implements websocket.EventPublisher
func (m *MockEventPublisher) Publish(tenantID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events[tenantID] = append(m.Events[tenantID], event.Type)
}
