package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"craftorders/internal/pkg/errs"
	"craftorders/internal/pkg/guard"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through the NewCustomer factory function.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

const (
	minCustomerNameLength = 2
	minAddressLength      = 10
)

// Customer is a value object carrying the contact details attached to an
// order. It validates eagerly so that an Order can never hold unreachable
// customer information.
//
// Validation rules:
//   - name: at least 2 characters after trimming
//   - email: parsable address
//   - address: at least 10 characters after trimming
type Customer struct {
	name    string
	email   string
	address string

	guard guard.ConstructorGuard
}

// NewCustomer creates a validated Customer value object.
// All failures are joined so the caller sees every bad field at once.
func NewCustomer(name, email, address string) (Customer, error) {
	customer := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setName(name),
		customer.setEmail(email),
		customer.setAddress(address),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the Customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Email returns the customer's contact email.
func (c Customer) Email() string {
	return c.email
}

// Address returns the customer's delivery address.
func (c Customer) Address() string {
	return c.address
}

func (c *Customer) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minCustomerNameLength {
		return errs.NewValueIsInvalidErrorWithCause("customerName",
			fmt.Errorf("name must be at least %d characters", minCustomerNameLength))
	}
	c.name = trimmed
	return nil
}

func (c *Customer) setEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}
	c.email = trimmed
	return nil
}

func (c *Customer) setAddress(address string) error {
	trimmed := strings.TrimSpace(address)
	if len(trimmed) < minAddressLength {
		return errs.NewValueIsInvalidErrorWithCause("customerAddress",
			fmt.Errorf("address must be at least %d characters", minAddressLength))
	}
	c.address = trimmed
	return nil
}
