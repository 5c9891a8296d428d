package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// OTPRequested is the event handed to the SMS gateway.
type OTPRequested struct {
	PhoneNo   string    `json:"phone_no"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expires_at"`
}

type OTPDispatcher interface {
	Dispatch(ctx context.Context, event OTPRequested) error
}

type natsOTPDispatcher struct {
	nc      *nats.Conn
	subject string
	log     *logrus.Logger
}

// NewOTPDispatcher publishes to NATS, or only logs when nc is nil.
func NewOTPDispatcher(nc *nats.Conn, subject string, log *logrus.Logger) OTPDispatcher {
	if nc == nil {
		return &noopOTPDispatcher{log: log}
	}
	return &natsOTPDispatcher{nc: nc, subject: subject, log: log}
}

func (d *natsOTPDispatcher) Dispatch(ctx context.Context, event OTPRequested) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal otp event: %w", err)
	}

	if err := d.nc.Publish(d.subject, data); err != nil {
		d.log.Warnf("Failed to publish NATS message on %s: %+v", d.subject, err)
		return fmt.Errorf("failed to publish otp event: %w", err)
	}

	d.log.WithField("subject", d.subject).Debug("Published OTP dispatch event")
	return nil
}

type noopOTPDispatcher struct {
	log *logrus.Logger
}

func (d *noopOTPDispatcher) Dispatch(ctx context.Context, event OTPRequested) error {
	d.log.WithField("phone_no", event.PhoneNo).Debug("OTP dispatch skipped, no broker configured")
	return nil
}
