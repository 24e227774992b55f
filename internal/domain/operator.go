package domain

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOperatorEmailTaken   = NewError(ErrConflict, "email already used by another operator")
	ErrOperatorAuth0IDTaken = NewError(ErrConflict, "identity already linked to an operator")
	ErrOperatorEmailInvalid = NewError(ErrValidation, "email is invalid")
	ErrOperatorRoleInvalid  = NewError(ErrValidation, "role must be operator, manager or admin")
	ErrOperatorAuth0ID      = NewError(ErrValidation, "identity subject is required")
	ErrOperatorSelfDelete   = NewError(ErrValidation, "operators cannot delete themselves")
)

// Role is an operator's access level within a tenant
type Role string

const (
	RoleOperator Role = "operator"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsElevated reports whether r may edit configuration, regenerate schedules and read reports
func (r Role) IsElevated() bool {
	return r == RoleManager || r == RoleAdmin
}

// Operator is a staff member acting on a tenant's data
type Operator struct {
	ID        uuid.UUID `json:"id"`
	TenantID  int32     `json:"tenantId"`
	Auth0ID   string    `json:"auth0Id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Operator) Validate() error {
	o.Name = strings.TrimSpace(o.Name)
	o.Email = strings.ToLower(strings.TrimSpace(o.Email))
	if o.Name == "" {
		return ErrNameRequired
	}
	if len(o.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if _, err := mail.ParseAddress(o.Email); err != nil {
		return ErrOperatorEmailInvalid
	}
	if o.Auth0ID == "" {
		return ErrOperatorAuth0ID
	}
	if !o.Role.Valid() {
		return ErrOperatorRoleInvalid
	}
	return nil
}

// Actor is the authenticated operator on whose behalf a core operation runs.
// It is passed explicitly into every mutating call.
type Actor struct {
	TenantID   int32
	OperatorID uuid.UUID
	Role       Role
}

// OperatorRepository defines persistence operations for operators.
// Every lookup except GetByAuth0ID is scoped to a tenant.
type OperatorRepository interface {
	GetByAuth0ID(ctx context.Context, auth0ID string) (*Operator, error)
	GetByID(ctx context.Context, tenantID int32, id uuid.UUID) (*Operator, error)
	ListByTenant(ctx context.Context, tenantID int32) ([]*Operator, error)
	Create(ctx context.Context, operator *Operator) (*Operator, error)
	Update(ctx context.Context, operator *Operator) (*Operator, error)
	Delete(ctx context.Context, tenantID int32, id uuid.UUID) error
}
