package domain

import "github.com/shopspring/decimal"

// OutstandingBalance is the single amount-owed rule: the sum of amount plus
// manual penalty over pending installments. Paid loans owe nothing.
func OutstandingBalance(loan *Loan, installments []*Installment) decimal.Decimal {
	if loan.IsSettled() {
		return decimal.Zero
	}
	return SumOutstanding(installments)
}

// SumOutstanding sums amount plus manual penalty over the pending installments.
// Callers pass installments already restricted to pending loans.
func SumOutstanding(installments []*Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		if inst.Status != InstallmentStatusPending {
			continue
		}
		total = total.Add(inst.UpdatedAmount())
	}
	return total
}
