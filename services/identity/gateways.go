package identity

import "context"

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/kerjalink/kerjalink/services/identity MailGW

// MailGW dispatches verification codes out-of-band. Delivery itself is an
// external collaborator; the service only hands the code off.
type MailGW interface {
	SendOTPEmail(ctx context.Context, email, code string) error
}
