// FILE: pkg/gateway/gateway.go
package gateway

import "context"

// PaymentIntent is the slice of the provider's intent object the services
// care about.
type PaymentIntent struct {
	Id           string
	ClientSecret string
}

type Customer struct {
	Id string
}

// Gateway abstracts the payment provider so services stay testable.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	CreatePaymentIntent(ctx context.Context, customerId string, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	CreateEphemeralKey(ctx context.Context, customerId string) (string, error)
	Refund(ctx context.Context, paymentIntentId string, amount int64) error
	CancelPaymentIntent(ctx context.Context, paymentIntentId string) error
}
