package entities

// PaymentCallback is what the hosted widget hands back after a successful
// payment. It is untrusted until the signature has been verified.
type PaymentCallback struct {
	ExternalOrderID   string
	ExternalPaymentID string
	Signature         string
}

type VerifyRequest struct {
	OrderID  string
	Callback PaymentCallback
}

// PaymentSession is the provider handle for one attempt to collect a total.
type PaymentSession struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

type SessionRequest struct {
	OrderID  string
	Receipt  string
	Amount   int64
	Currency string
}
