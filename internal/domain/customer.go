package domain

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNotFound        = NewError(ErrNotFound, "customer not found")
	ErrCustomerTaxIDTaken      = NewError(ErrConflict, "tax id already registered for this tenant")
	ErrCustomerTaxIDInvalid    = NewError(ErrValidation, "tax id must have 11 (CPF) or 14 (CNPJ) digits")
	ErrCustomerPhoneRequired   = NewError(ErrValidation, "phone is required")
	ErrCustomerAddressRequired = NewError(ErrValidation, "address, city and state are required")
	ErrCustomerCompanyInvalid  = NewError(ErrValidation, "company must be one of FH1, FH2, FH3, FH4")
)

// Tax id lengths after stripping punctuation
const (
	CPFLength  = 11
	CNPJLength = 14
)

// Companies is the fixed set of lending companies a customer can be booked under
var Companies = []string{"FH1", "FH2", "FH3", "FH4"}

// Customer is a borrower
type Customer struct {
	ID               int32     `json:"id"`
	TenantID         int32     `json:"tenantId"`
	Name             string    `json:"name"`
	TaxID            string    `json:"taxId"`
	RG               *string   `json:"rg,omitempty"`
	Email            *string   `json:"email,omitempty"`
	Phone            string    `json:"phone"`
	PhoneAlt         *string   `json:"phoneAlt,omitempty"`
	PixKey           *string   `json:"pixKey,omitempty"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          *string   `json:"zipCode,omitempty"`
	ReferenceName    *string   `json:"referenceName,omitempty"`
	ReferencePhone   *string   `json:"referencePhone,omitempty"`
	ReferenceAddress *string   `json:"referenceAddress,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	Company          *string   `json:"company,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NormalizeTaxID strips every non-digit character
func NormalizeTaxID(taxID string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, taxID)
}

// ValidTaxID reports whether taxID has the length of a CPF or CNPJ once normalized
func ValidTaxID(taxID string) bool {
	n := len(NormalizeTaxID(taxID))
	return n == CPFLength || n == CNPJLength
}

// ValidCompany reports whether company is one of Companies
func ValidCompany(company string) bool {
	for _, c := range Companies {
		if c == company {
			return true
		}
	}
	return false
}

// Validate normalizes and checks the customer's required fields
func (c *Customer) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return ErrNameRequired
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !ValidTaxID(c.TaxID) {
		return ErrCustomerTaxIDInvalid
	}
	c.TaxID = NormalizeTaxID(c.TaxID)
	if c.Phone == "" {
		return ErrCustomerPhoneRequired
	}
	if strings.TrimSpace(c.Address) == "" || strings.TrimSpace(c.City) == "" || strings.TrimSpace(c.State) == "" {
		return ErrCustomerAddressRequired
	}
	if c.Company != nil {
		if *c.Company == "" {
			c.Company = nil
		} else if !ValidCompany(*c.Company) {
			return ErrCustomerCompanyInvalid
		}
	}
	return nil
}

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	Company *string
	// InArrearsAsOf keeps only customers owning a pending installment due before this date
	InArrearsAsOf *time.Time
}

// CustomerWithBalance is a customer row enriched with its derived balance
type CustomerWithBalance struct {
	Customer
	Balance decimal.Decimal `json:"balance"`
}

// CustomerRepository defines persistence operations for customers.
// Every method is scoped to a tenant.
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) (*Customer, error)
	GetByID(ctx context.Context, tenantID int32, id int32) (*Customer, error)
	List(ctx context.Context, tenantID int32, filter CustomerFilter) ([]*Customer, error)
	Update(ctx context.Context, customer *Customer) (*Customer, error)
	// Delete removes the customer and, in the same transaction, every loan it owns
	Delete(ctx context.Context, tenantID int32, id int32) error
	Count(ctx context.Context, tenantID int32, company *string) (int64, error)
}
