package leads

import (
	"context"

	"github.com/neuroeducatimo/landing/internal/notifications"
	"github.com/neuroeducatimo/landing/pkg/worker"
)

// RepositoryInterface defines the interface for lead repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, l *Lead) error
	List(ctx context.Context, limit, offset int) ([]*Lead, int64, error)
}

// Notifier sends the operator notification and the thank-you email
type Notifier interface {
	OperatorEnabled() bool
	ThankYouEnabled() bool
	NotifyOperator(ctx context.Context, d notifications.LeadDetails) error
	SendThankYou(ctx context.Context, d notifications.LeadDetails) error
}

// Executor runs background tasks
type Executor interface {
	Go(ctx context.Context, name string, task worker.Task) error
}
