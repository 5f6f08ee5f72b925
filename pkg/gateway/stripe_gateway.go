package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	c, err := g.api.Customers.New(params)
	if err != nil {
		return nil, err
	}
	return &Customer{Id: c.ID}, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, customerId string, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if customerId != "" {
		params.Customer = stripe.String(customerId)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{Id: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) CreateEphemeralKey(ctx context.Context, customerId string) (string, error) {
	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerId),
		StripeVersion: stripe.String(stripe.APIVersion),
	}
	params.Context = ctx
	key, err := g.api.EphemeralKeys.New(params)
	if err != nil {
		return "", err
	}
	return key.Secret, nil
}

func (g *StripeGateway) Refund(ctx context.Context, paymentIntentId string, amount int64) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentId),
	}
	if amount > 0 {
		params.Amount = stripe.Int64(amount)
	}
	params.Context = ctx
	_, err := g.api.Refunds.New(params)
	return err
}

func (g *StripeGateway) CancelPaymentIntent(ctx context.Context, paymentIntentId string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	_, err := g.api.PaymentIntents.Cancel(paymentIntentId, params)
	return err
}
