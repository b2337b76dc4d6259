// Package sms delivers authentication codes to phone numbers.
package sms

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sender delivers a one-time authentication code to a phone number.
// Implementations must never log the code.
type Sender interface {
	SendAuthCode(ctx context.Context, phone, code string) error
}

// SimulatedSender pretends to send an SMS by sleeping for a configured delay.
// Used in development and tests when no SMS provider is configured.
type SimulatedSender struct {
	Delay  time.Duration
	Logger *zap.Logger
}

// NewSimulatedSender returns a sender that blocks for delay per send.
func NewSimulatedSender(delay time.Duration, logger *zap.Logger) *SimulatedSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedSender{Delay: delay, Logger: logger}
}

// SendAuthCode sleeps for the configured delay and logs the delivery.
// Returns early with ctx.Err() if the context is cancelled during the delay.
func (s *SimulatedSender) SendAuthCode(ctx context.Context, phone, code string) error {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	s.Logger.Info("simulated sms delivery", zap.String("phone", phone))
	return nil
}
