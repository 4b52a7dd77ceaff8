package models

// PaymentStatus is the terminal state of a payment-verification check.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentFailed   PaymentStatus = "failed"
)

// PaymentSession is the client's view of one checkout verification. It lives
// only for the duration of the verify command; the payment provider owns the
// durable record.
type PaymentSession struct {
	SessionID string
	Status    PaymentStatus
}
