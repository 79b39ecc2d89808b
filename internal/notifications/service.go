package notifications

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/neuroeducatimo/landing/internal/siteconfig"
	"github.com/neuroeducatimo/landing/pkg/logger"
)

// Service renders lead emails and hands them to the configured channels.
// A nil sender means the channel is not configured.
type Service struct {
	operator      Sender
	operatorEmail string
	thankYou      Sender
	bundle        *siteconfig.Bundle
}

// NewService creates a notification service. operator or thankYou may be nil.
func NewService(operator Sender, operatorEmail string, thankYou Sender, bundle *siteconfig.Bundle) *Service {
	if bundle == nil {
		bundle = siteconfig.Default()
	}
	if operatorEmail == "" {
		operator = nil
	}
	return &Service{
		operator:      operator,
		operatorEmail: operatorEmail,
		thankYou:      thankYou,
		bundle:        bundle,
	}
}

// OperatorEnabled reports whether operator notifications can be sent
func (s *Service) OperatorEnabled() bool {
	return s.operator != nil
}

// ThankYouEnabled reports whether thank-you emails can be sent
func (s *Service) ThankYouEnabled() bool {
	return s.thankYou != nil
}

// NotifyOperator emails the operator mailbox about a new lead
func (s *Service) NotifyOperator(ctx context.Context, d LeadDetails) error {
	if s.operator == nil {
		return ErrNotConfigured
	}
	msg, err := BuildOperatorNotice(s.operatorEmail, d)
	if err != nil {
		return err
	}
	if err := s.operator.Send(ctx, msg); err != nil {
		logger.WithContext(ctx).Error("Failed to send operator notification",
			zap.String("lead_email", d.Email),
			zap.Error(err),
		)
		return fmt.Errorf("operator notification: %w", err)
	}
	return nil
}

// SendThankYou emails the lead a localized thank-you message
func (s *Service) SendThankYou(ctx context.Context, d LeadDetails) error {
	if s.thankYou == nil {
		return ErrNotConfigured
	}
	msg, err := BuildThankYou(s.bundle, d)
	if err != nil {
		return err
	}
	if err := s.thankYou.Send(ctx, msg); err != nil {
		logger.WithContext(ctx).Error("Failed to send thank-you email",
			zap.String("lead_email", d.Email),
			zap.String("tag", msg.Tag),
			zap.Error(err),
		)
		return fmt.Errorf("thank-you email: %w", err)
	}
	return nil
}
