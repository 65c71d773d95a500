package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User roles.
const (
	RoleAdmin     = "admin"
	RoleStoreUser = "store_user"
)

// User-related domain errors.
var (
	ErrUserNotFound = &Error{Code: ENOTFOUND, Message: "User not found"}
)

// User is an operator account. Authentication lives at the API gateway;
// here the account carries identity plus the invoice defaults applied to
// every invoice the user raises.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      string

	// Invoice defaults.
	DefaultTaxRate      decimal.Decimal
	DefaultPaymentTerms int
	TermsAndConditions  string
	Numbering           NumberingConfig

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name, falling back to the email address.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
