package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Recipient(t *testing.T) {
	guest := Customer{FirstName: "Asha", LastName: "Rao", Email: "guest@example.com"}

	testCases := []struct {
		name      string
		account   *Account
		wantEmail string
		wantName  string
	}{
		{name: "guest", wantEmail: "guest@example.com", wantName: "Asha Rao"},
		{
			name:      "account wins",
			account:   &Account{ID: "u1", Name: "Asha R.", Email: "asha@example.com"},
			wantEmail: "asha@example.com",
			wantName:  "Asha R.",
		},
		{
			name:      "account without email falls back",
			account:   &Account{ID: "u1", Name: "Asha R."},
			wantEmail: "guest@example.com",
			wantName:  "Asha Rao",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := Order{Customer: guest, Account: tc.account}
			email, name := o.Recipient()
			assert.Equal(t, tc.wantEmail, email)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestPaymentStatus_Payable(t *testing.T) {
	assert.True(t, PaymentStatusPending.Payable())
	assert.True(t, PaymentStatusProcessing.Payable())
	assert.True(t, PaymentStatusFailed.Payable())
	assert.False(t, PaymentStatusCompleted.Payable())
	assert.False(t, PaymentStatusCancelled.Payable())
	assert.False(t, PaymentStatusRefunded.Payable())
}

func TestOrder_AwaitsPayment(t *testing.T) {
	o := Order{PaymentStatus: PaymentStatusPending, Status: OrderStatusPending}
	assert.True(t, o.AwaitsPayment())

	o.PaymentStatus = PaymentStatusFailed
	assert.True(t, o.AwaitsPayment())

	o.Status = OrderStatusCancelled
	assert.False(t, o.AwaitsPayment())

	o = Order{PaymentStatus: PaymentStatusCompleted, Status: OrderStatusConfirmed}
	assert.False(t, o.AwaitsPayment())
}

func TestCustomer_FullName(t *testing.T) {
	assert.Equal(t, "Asha Rao", Customer{FirstName: "Asha", LastName: "Rao"}.FullName())
	assert.Equal(t, "Asha", Customer{FirstName: "Asha"}.FullName())
	assert.Equal(t, "Rao", Customer{LastName: "Rao"}.FullName())
}
