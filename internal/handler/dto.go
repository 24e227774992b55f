package handler

import (
	"github.com/dafibh/tally/tally-backend/internal/domain"
)

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               int32   `json:"id"`
	Name             string  `json:"name"`
	TaxID            string  `json:"taxId"`
	RG               *string `json:"rg,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            string  `json:"phone"`
	PhoneAlt         *string `json:"phoneAlt,omitempty"`
	PixKey           *string `json:"pixKey,omitempty"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          *string `json:"zipCode,omitempty"`
	ReferenceName    *string `json:"referenceName,omitempty"`
	ReferencePhone   *string `json:"referencePhone,omitempty"`
	ReferenceAddress *string `json:"referenceAddress,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Company          *string `json:"company,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// CustomerWithBalanceResponse is a customer list row
type CustomerWithBalanceResponse struct {
	CustomerResponse
	Balance string `json:"balance"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID               int32   `json:"id"`
	CustomerID       int32   `json:"customerId"`
	Description      string  `json:"description"`
	OriginalAmount   string  `json:"originalAmount"`
	RateTier         int32   `json:"rateTier"`
	TotalDue         string  `json:"totalDue"`
	PaidAmount       string  `json:"paidAmount"`
	Discount         string  `json:"discount"`
	Status           string  `json:"status"`
	DueDate          string  `json:"dueDate"`
	PaidDate         *string `json:"paidDate,omitempty"`
	InstallmentCount int32   `json:"installmentCount"`
	ChargeType       string  `json:"chargeType"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// LoanSummaryResponse is a loan list row
type LoanSummaryResponse struct {
	LoanResponse
	Balance string `json:"balance"`
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID             int32   `json:"id"`
	LoanID         int32   `json:"loanId"`
	SequenceNumber int32   `json:"sequenceNumber"`
	Amount         string  `json:"amount"`
	ManualPenalty  *string `json:"manualPenalty"`
	UpdatedAmount  string  `json:"updatedAmount"`
	DueDate        string  `json:"dueDate"`
	Status         string  `json:"status"`
	PaidAmount     string  `json:"paidAmount"`
	PaidDate       *string `json:"paidDate,omitempty"`
	PaymentMethod  *string `json:"paymentMethod,omitempty"`
	Overdue        bool    `json:"overdue"`
}

// AccrualResponse is the advisory late charge of a loan
type AccrualResponse struct {
	Penalty  string `json:"penalty"`
	Interest string `json:"interest"`
	TotalDue string `json:"totalDue"`
	DaysLate int    `json:"daysLate"`
}

// LoanDetailResponse is a loan with its schedule, balance and accrual
type LoanDetailResponse struct {
	Loan         LoanResponse          `json:"loan"`
	Installments []InstallmentResponse `json:"installments"`
	Balance      string                `json:"balance"`
	Accrual      AccrualResponse       `json:"accrual"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         int32   `json:"id"`
	LoanID     int32   `json:"loanId"`
	Amount     string  `json:"amount"`
	PaidOn     string  `json:"paidOn"`
	Method     string  `json:"method"`
	Note       *string `json:"note,omitempty"`
	OperatorID *string `json:"operatorId,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// HistoryResponse represents a payment history entry in API responses
type HistoryResponse struct {
	ID              int32   `json:"id"`
	LoanID          int32   `json:"loanId"`
	CustomerID      int32   `json:"customerId"`
	InstallmentID   *int32  `json:"installmentId,omitempty"`
	Amount          string  `json:"amount"`
	PaidOn          string  `json:"paidOn"`
	Method          string  `json:"method"`
	Note            *string `json:"note,omitempty"`
	LoanDescription string  `json:"loanDescription,omitempty"`
}

// CustomerDetailResponse is a customer with loans and payment history
type CustomerDetailResponse struct {
	Customer CustomerResponse     `json:"customer"`
	Loans    []LoanDetailResponse `json:"loans"`
	Balance  string               `json:"balance"`
	History  []HistoryResponse    `json:"history"`
}

// GenericPaymentResponse holds the rows written by a generic payment
type GenericPaymentResponse struct {
	Loan    LoanResponse    `json:"loan"`
	Payment PaymentResponse `json:"payment"`
	History HistoryResponse `json:"history"`
}

// SettlementResponse holds the rows written by a settlement
type SettlementResponse struct {
	Installment InstallmentResponse `json:"installment"`
	Loan        LoanResponse        `json:"loan"`
	History     HistoryResponse     `json:"history"`
	LoanClosed  bool                `json:"loanClosed"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID      int32  `json:"id"`
	LoanID  int32  `json:"loanId"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  string `json:"status"`
	SentAt  string `json:"sentAt"`
}

// BalanceResponse is a derived outstanding balance
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// KPIsResponse represents the collection KPIs
type KPIsResponse struct {
	CustomerCount     int64  `json:"customerCount"`
	PendingLoans      int64  `json:"pendingLoans"`
	OverdueLoans      int64  `json:"overdueLoans"`
	PaidLoans         int64  `json:"paidLoans"`
	OutstandingTotal  string `json:"outstandingTotal"`
	ReceivedThisMonth string `json:"receivedThisMonth"`
}

// CompanyKPIResponse represents one company's figures
type CompanyKPIResponse struct {
	Company          string `json:"company"`
	CustomerCount    int64  `json:"customerCount"`
	OutstandingTotal string `json:"outstandingTotal"`
}

// DashboardLoanResponse is an open loan row on the dashboard
type DashboardLoanResponse struct {
	Loan         LoanResponse `json:"loan"`
	CustomerName string       `json:"customerName"`
	Phone        string       `json:"phone"`
	Balance      string       `json:"balance"`
	DaysLate     int          `json:"daysLate"`
}

// DashboardResponse aggregates the landing page
type DashboardResponse struct {
	KPIs      KPIsResponse                  `json:"kpis"`
	Companies []CompanyKPIResponse          `json:"companies"`
	OpenLoans []DashboardLoanResponse       `json:"openLoans"`
	Arrears   []CustomerWithBalanceResponse `json:"arrears"`
}

// SettingsResponse represents the tenant accrual settings
type SettingsResponse struct {
	ToleranceDays       int    `json:"toleranceDays"`
	PenaltyRate         string `json:"penaltyRate"`
	MonthlyInterestRate string `json:"monthlyInterestRate"`
}

// OperatorResponse represents an operator in API responses
type OperatorResponse struct {
	ID        string `json:"id"`
	TenantID  int32  `json:"tenantId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxID:            c.TaxID,
		RG:               c.RG,
		Email:            c.Email,
		Phone:            c.Phone,
		PhoneAlt:         c.PhoneAlt,
		PixKey:           c.PixKey,
		Address:          c.Address,
		City:             c.City,
		State:            c.State,
		ZipCode:          c.ZipCode,
		ReferenceName:    c.ReferenceName,
		ReferencePhone:   c.ReferencePhone,
		ReferenceAddress: c.ReferenceAddress,
		Notes:            c.Notes,
		Company:          c.Company,
		CreatedAt:        formatTimestamp(c.CreatedAt),
		UpdatedAt:        formatTimestamp(c.UpdatedAt),
	}
}

func toCustomerWithBalanceResponses(rows []domain.CustomerWithBalance) []CustomerWithBalanceResponse {
	out := make([]CustomerWithBalanceResponse, len(rows))
	for i := range rows {
		out[i] = CustomerWithBalanceResponse{
			CustomerResponse: toCustomerResponse(&rows[i].Customer),
			Balance:          formatMoney(rows[i].Balance),
		}
	}
	return out
}

func toLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:               l.ID,
		CustomerID:       l.CustomerID,
		Description:      l.Description,
		OriginalAmount:   formatMoney(l.OriginalAmount),
		RateTier:         int32(l.RateTier),
		TotalDue:         formatMoney(l.TotalDue),
		PaidAmount:       formatMoney(l.PaidAmount),
		Discount:         formatMoney(l.Discount),
		Status:           string(l.Status),
		DueDate:          formatDate(l.DueDate),
		PaidDate:         formatOptionalDate(l.PaidDate),
		InstallmentCount: l.InstallmentCount,
		ChargeType:       l.ChargeType,
		CreatedAt:        formatTimestamp(l.CreatedAt),
		UpdatedAt:        formatTimestamp(l.UpdatedAt),
	}
}

func toInstallmentResponse(i *domain.Installment, overdue bool) InstallmentResponse {
	var method *string
	if i.PaymentMethod != nil {
		m := string(*i.PaymentMethod)
		method = &m
	}
	return InstallmentResponse{
		ID:             i.ID,
		LoanID:         i.LoanID,
		SequenceNumber: i.SequenceNumber,
		Amount:         formatMoney(i.Amount),
		ManualPenalty:  formatOptionalMoney(i.ManualPenalty),
		UpdatedAmount:  formatMoney(i.UpdatedAmount()),
		DueDate:        formatDate(i.DueDate),
		Status:         string(i.Status),
		PaidAmount:     formatMoney(i.PaidAmount),
		PaidDate:       formatOptionalDate(i.PaidDate),
		PaymentMethod:  method,
		Overdue:        overdue,
	}
}

func toAccrualResponse(a domain.Accrual) AccrualResponse {
	return AccrualResponse{
		Penalty:  formatMoney(a.Penalty),
		Interest: formatMoney(a.Interest),
		TotalDue: formatMoney(a.TotalDue),
		DaysLate: a.DaysLate,
	}
}

func toLoanDetailResponse(d *domain.LoanDetail) LoanDetailResponse {
	insts := make([]InstallmentResponse, len(d.Installments))
	for i, view := range d.Installments {
		insts[i] = toInstallmentResponse(view.Installment, view.Overdue)
	}
	return LoanDetailResponse{
		Loan:         toLoanResponse(d.Loan),
		Installments: insts,
		Balance:      formatMoney(d.Balance),
		Accrual:      toAccrualResponse(d.Accrual),
	}
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	var operatorID *string
	if p.OperatorID != nil {
		s := p.OperatorID.String()
		operatorID = &s
	}
	return PaymentResponse{
		ID:         p.ID,
		LoanID:     p.LoanID,
		Amount:     formatMoney(p.Amount),
		PaidOn:     formatDate(p.PaidOn),
		Method:     string(p.Method),
		Note:       p.Note,
		OperatorID: operatorID,
		CreatedAt:  formatTimestamp(p.CreatedAt),
	}
}

func toHistoryResponse(h *domain.PaymentHistory, loanDescription string) HistoryResponse {
	return HistoryResponse{
		ID:              h.ID,
		LoanID:          h.LoanID,
		CustomerID:      h.CustomerID,
		InstallmentID:   h.InstallmentID,
		Amount:          formatMoney(h.Amount),
		PaidOn:          formatDate(h.PaidOn),
		Method:          string(h.Method),
		Note:            h.Note,
		LoanDescription: loanDescription,
	}
}

func toNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID,
		LoanID:  n.LoanID,
		Kind:    string(n.Kind),
		Message: n.Message,
		Status:  n.Status,
		SentAt:  formatTimestamp(n.SentAt),
	}
}

func toCustomerDetailResponse(d *domain.CustomerDetail) CustomerDetailResponse {
	loans := make([]LoanDetailResponse, len(d.Loans))
	for i := range d.Loans {
		loans[i] = toLoanDetailResponse(&d.Loans[i])
	}
	history := make([]HistoryResponse, len(d.History))
	for i, entry := range d.History {
		history[i] = toHistoryResponse(&entry.PaymentHistory, entry.LoanDescription)
	}
	return CustomerDetailResponse{
		Customer: toCustomerResponse(d.Customer),
		Loans:    loans,
		Balance:  formatMoney(d.Balance),
		History:  history,
	}
}

func toKPIsResponse(k *domain.KPIs) KPIsResponse {
	return KPIsResponse{
		CustomerCount:     k.CustomerCount,
		PendingLoans:      k.PendingLoans,
		OverdueLoans:      k.OverdueLoans,
		PaidLoans:         k.PaidLoans,
		OutstandingTotal:  formatMoney(k.OutstandingTotal),
		ReceivedThisMonth: formatMoney(k.ReceivedThisMonth),
	}
}

func toCompanyKPIResponses(rows []domain.CompanyKPI) []CompanyKPIResponse {
	out := make([]CompanyKPIResponse, len(rows))
	for i, row := range rows {
		out[i] = CompanyKPIResponse{
			Company:          row.Company,
			CustomerCount:    row.CustomerCount,
			OutstandingTotal: formatMoney(row.OutstandingTotal),
		}
	}
	return out
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	open := make([]DashboardLoanResponse, len(d.OpenLoans))
	for i, row := range d.OpenLoans {
		open[i] = DashboardLoanResponse{
			Loan:         toLoanResponse(row.Loan),
			CustomerName: row.CustomerName,
			Phone:        row.Phone,
			Balance:      formatMoney(row.Balance),
			DaysLate:     row.DaysLate,
		}
	}
	return DashboardResponse{
		KPIs:      toKPIsResponse(&d.KPIs),
		Companies: toCompanyKPIResponses(d.Companies),
		OpenLoans: open,
		Arrears:   toCustomerWithBalanceResponses(d.Arrears),
	}
}

func toSettingsResponse(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		ToleranceDays:       s.ToleranceDays,
		PenaltyRate:         s.PenaltyRate.String(),
		MonthlyInterestRate: s.MonthlyInterestRate.String(),
	}
}

func toOperatorResponse(o *domain.Operator) OperatorResponse {
	return OperatorResponse{
		ID:        o.ID.String(),
		TenantID:  o.TenantID,
		Name:      o.Name,
		Email:     o.Email,
		Role:      string(o.Role),
		CreatedAt: formatTimestamp(o.CreatedAt),
	}
}
