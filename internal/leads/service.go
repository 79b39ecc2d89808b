package leads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neuroeducatimo/landing/internal/notifications"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/neuroeducatimo/landing/pkg/validation"
)

// Service handles lead intake
type Service struct {
	repo     RepositoryInterface
	notifier Notifier
	executor Executor
	now      func() time.Time
}

// NewService creates a new leads service
func NewService(repo RepositoryInterface, notifier Notifier, executor Executor) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		executor: executor,
		now:      time.Now,
	}
}

// Register stores a submission and notifies the operator. It succeeds when
// either of those worked. The thank-you email is dispatched in the
// background in every case once the submission is valid.
func (s *Service) Register(ctx context.Context, sub Submission) (*RegisterResult, error) {
	lead, details, err := s.normalize(sub)
	if err != nil {
		registrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	log := logger.WithContext(ctx).With(zap.String("lead_id", lead.ID.String()))

	persistErr := s.repo.Create(ctx, lead)
	if persistErr != nil {
		stepsTotal.WithLabelValues(stepPersist, statusError).Inc()
		log.Error("Failed to persist lead", zap.Error(persistErr))
	} else {
		stepsTotal.WithLabelValues(stepPersist, statusOK).Inc()
	}

	var notifyErr error
	notified := false
	if s.notifier.OperatorEnabled() {
		notifyErr = s.notifier.NotifyOperator(ctx, details)
		if notifyErr != nil {
			stepsTotal.WithLabelValues(stepOperator, statusError).Inc()
		} else {
			notified = true
			stepsTotal.WithLabelValues(stepOperator, statusOK).Inc()
		}
	} else {
		notifyErr = notifications.ErrNotConfigured
		stepsTotal.WithLabelValues(stepOperator, statusSkipped).Inc()
		log.Info("Operator notification skipped, SMTP not configured")
	}

	s.dispatchThankYou(ctx, details, log)

	if persistErr != nil && !notified {
		registrationsTotal.WithLabelValues("failed").Inc()
		return nil, common.NewDependencyError(
			"registration could not be completed, please try again later",
			errors.Join(persistErr, notifyErr),
		)
	}

	registrationsTotal.WithLabelValues("success").Inc()
	log.Info("Lead registered",
		zap.String("source", lead.Source),
		zap.Bool("persisted", persistErr == nil),
		zap.Bool("operator_notified", notified),
	)

	return &RegisterResult{
		Email:            lead.Email,
		OrganizationName: lead.OrganizationName,
		Persisted:        persistErr == nil,
		OperatorNotified: notified,
	}, nil
}

// ListLeads returns a page of stored leads
func (s *Service) ListLeads(ctx context.Context, limit, offset int) ([]*Lead, int64, error) {
	leads, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, common.NewInternalError("failed to list leads", err)
	}
	return leads, total, nil
}

func (s *Service) dispatchThankYou(ctx context.Context, d notifications.LeadDetails, log *zap.Logger) {
	if !s.notifier.ThankYouEnabled() {
		stepsTotal.WithLabelValues(stepThankYou, statusSkipped).Inc()
		log.Info("Thank-you email skipped, transactional email not configured")
		return
	}

	err := s.executor.Go(ctx, "lead_thank_you", func(ctx context.Context) error {
		return s.notifier.SendThankYou(ctx, d)
	})
	if err != nil {
		stepsTotal.WithLabelValues(stepThankYou, statusError).Inc()
		log.Warn("Failed to dispatch thank-you email", zap.Error(err))
		return
	}
	stepsTotal.WithLabelValues(stepThankYou, statusDispatched).Inc()
}

func (s *Service) normalize(sub Submission) (*Lead, notifications.LeadDetails, error) {
	email := strings.TrimSpace(sub.Email)
	org := sub.organization()
	if email == "" || org == "" {
		return nil, notifications.LeadDetails{}, common.NewBadRequestError("Email and organization name are required", nil)
	}
	if err := validation.ValidateVar(email, "email"); err != nil {
		// Only a missing address is rejected; a malformed one is logged.
		logger.Warn("Lead email does not look like an address", zap.String("email", email))
	}

	answers, decoded, rawText := parseQuizAnswers(sub.QuizAnswers, sub.QuizAnswersText)

	lead := &Lead{
		ID:               uuid.New(),
		Email:            email,
		OrganizationName: org,
		Language:         sub.language(),
		Phone:            strings.TrimSpace(sub.Phone),
		OrgType:          strings.TrimSpace(sub.OrgType),
		StudentsCount:    strings.TrimSpace(string(sub.StudentsCount)),
		Source:           normalizeSource(sub.Source),
		QuizAnswers:      answers,
		CreatedAt:        s.now().UTC(),
	}

	details := notifications.LeadDetails{
		Email:            lead.Email,
		OrganizationName: lead.OrganizationName,
		Language:         lead.Language,
		Phone:            lead.Phone,
		OrgType:          lead.OrgType,
		StudentsCount:    lead.StudentsCount,
		Source:           lead.Source,
		QuizAnswers:      decoded,
		QuizAnswersRaw:   rawText,
		SubmittedAt:      lead.CreatedAt,
	}
	if decoded == nil && rawText == "" && len(answers) > 0 {
		details.QuizAnswersRaw = string(answers)
	}
	return lead, details, nil
}
