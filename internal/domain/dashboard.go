package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accrual is the advisory late charge on a loan's original amount
type Accrual struct {
	Penalty  decimal.Decimal `json:"penalty"`
	Interest decimal.Decimal `json:"interest"`
	TotalDue decimal.Decimal `json:"totalDue"`
	DaysLate int             `json:"daysLate"`
}

// InstallmentView is an installment with its updated amount
type InstallmentView struct {
	*Installment
	UpdatedAmount decimal.Decimal `json:"updatedAmount"`
	Overdue       bool            `json:"overdue"`
}

// LoanDetail is a loan with its schedule and read-time projections
type LoanDetail struct {
	Loan         *Loan             `json:"loan"`
	Installments []InstallmentView `json:"installments"`
	Balance      decimal.Decimal   `json:"balance"`
	Accrual      Accrual           `json:"accrual"`
}

// CustomerDetail is a customer with its loans and payment history
type CustomerDetail struct {
	Customer *Customer              `json:"customer"`
	Loans    []LoanDetail           `json:"loans"`
	Balance  decimal.Decimal        `json:"balance"`
	History  []*PaymentHistoryEntry `json:"history"`
}

// KPIs are the tenant-wide collection figures
type KPIs struct {
	CustomerCount     int64           `json:"customerCount"`
	PendingLoans      int64           `json:"pendingLoans"`
	OverdueLoans      int64           `json:"overdueLoans"`
	PaidLoans         int64           `json:"paidLoans"`
	OutstandingTotal  decimal.Decimal `json:"outstandingTotal"`
	ReceivedThisMonth decimal.Decimal `json:"receivedThisMonth"`
}

// CompanyKPI is the customer count and outstanding total of one company
type CompanyKPI struct {
	Company          string          `json:"company"`
	CustomerCount    int64           `json:"customerCount"`
	OutstandingTotal decimal.Decimal `json:"outstandingTotal"`
}

// DashboardLoan is an open loan row on the dashboard
type DashboardLoan struct {
	Loan         *Loan           `json:"loan"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone"`
	Balance      decimal.Decimal `json:"balance"`
	DaysLate     int             `json:"daysLate"`
}

// Dashboard aggregates the landing page figures
type Dashboard struct {
	KPIs      KPIs                  `json:"kpis"`
	Companies []CompanyKPI          `json:"companies"`
	OpenLoans []DashboardLoan       `json:"openLoans"`
	Arrears   []CustomerWithBalance `json:"arrears"`
}

// CalendarEvent is a loan due date rendered for a calendar
type CalendarEvent struct {
	Title      string    `json:"title"`
	Start      string    `json:"start"`
	LoanID     int32     `json:"loanId"`
	CustomerID int32     `json:"customerId"`
	Date       time.Time `json:"-"`
}

// LoanSummary is a loan row with its derived balance
type LoanSummary struct {
	*Loan
	Balance decimal.Decimal `json:"balance"`
}
