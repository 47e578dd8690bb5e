package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/kerjalink/kerjalink/internal/pkg/constants"
	"github.com/kerjalink/kerjalink/internal/pkg/models"
	nsqpkg "github.com/kerjalink/kerjalink/internal/pkg/nsq"
)

// IdentityGW publishes identity events for out-of-process consumers, currently
// just the OTP mail dispatcher.
type IdentityGW struct {
	producer *nsqpkg.Producer
}

// NewIdentityGW creates a new identity gateway instance
func NewIdentityGW(producer *nsqpkg.Producer) *IdentityGW {
	return &IdentityGW{producer: producer}
}

// SendOTPEmail hands a verification code off to the mail dispatcher
func (g *IdentityGW) SendOTPEmail(ctx context.Context, email, code string) error {
	event := models.OTPEmailEvent{
		Email:    email,
		Code:     code,
		IssuedAt: time.Now(),
	}

	if err := g.producer.Publish(constants.TopicOTPEmail, event); err != nil {
		return fmt.Errorf("failed to publish OTP email event: %w", err)
	}

	return nil
}
