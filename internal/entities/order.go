package entities

import (
	"slices"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// PayableStatuses are the payment states a verified callback may complete.
var PayableStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusProcessing,
	PaymentStatusFailed,
}

func (s PaymentStatus) Payable() bool {
	return slices.Contains(PayableStatuses, s)
}

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
)

// UsesGateway reports whether the method collects money through the hosted widget.
func (m PaymentMethod) UsesGateway() bool {
	return m == PaymentMethodRazorpay
}

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

type Address struct {
	FullName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	Phone        string
}

// Account is the registered user an order belongs to, if any.
type Account struct {
	ID    string
	Name  string
	Email string
}

type OrderItem struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
	Total     int64
}

type Order struct {
	ID          string
	OrderNumber string
	UserID      string

	Items    []OrderItem
	Subtotal int64
	Shipping int64
	Tax      int64
	Total    int64
	Currency string

	Customer        Customer
	ShippingAddress Address
	BillingAddress  Address
	ShippingMethod  string
	Notes           string

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        OrderStatus

	PaymentSessionID     string
	PaymentTransactionID string
	PaymentSignature     string

	// nil for guest checkout
	Account *Account

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AwaitsPayment reports whether a verified callback may still confirm the
// order: its payment is payable and the order itself was not moved on,
// for example cancelled by an operator.
func (o Order) AwaitsPayment() bool {
	return o.PaymentStatus.Payable() && o.Status == OrderStatusPending
}

// Recipient resolves who should hear about the order: the registered
// account first, then the guest checkout details.
func (o Order) Recipient() (email, name string) {
	if o.Account != nil && o.Account.Email != "" {
		email, name = o.Account.Email, o.Account.Name
	}
	if email == "" {
		email = o.Customer.Email
	}
	if name == "" {
		name = o.Customer.FullName()
	}
	return email, name
}

// OrderRequest is a cart submitted for checkout. Prices are whatever the
// client believed; they are never used for totals.
type OrderRequest struct {
	Items           []RequestItem
	Customer        Customer
	ShippingAddress Address
	BillingAddress  Address
	ShippingMethod  string
	Notes           string
	PaymentMethod   PaymentMethod
	UserID          string
}

type RequestItem struct {
	ProductID string
	Quantity  int
	Price     int64
}

// OrderSummary is the slice of a confirmed order that travels on the
// orders.confirmed topic.
type OrderSummary struct {
	OrderID       string
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	PaymentMethod PaymentMethod
	Total         int64
	Currency      string
	Items         []OrderItem
	CreatedAt     time.Time
}

func (o Order) Summary() OrderSummary {
	email, name := o.Recipient()
	return OrderSummary{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  name,
		CustomerEmail: email,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		Currency:      o.Currency,
		Items:         o.Items,
		CreatedAt:     o.CreatedAt,
	}
}
