package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/neuroeducatimo/landing/internal/notifications"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/worker"
)

// MockRepository is a mock implementation of RepositoryInterface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, l *Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]*Lead, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Lead), args.Get(1).(int64), args.Error(2)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OperatorEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockNotifier) ThankYouEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockNotifier) NotifyOperator(ctx context.Context, d notifications.LeadDetails) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockNotifier) SendThankYou(ctx context.Context, d notifications.LeadDetails) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// syncExecutor runs tasks inline so tests can assert on them
type syncExecutor struct {
	names []string
	err   error
}

func (e *syncExecutor) Go(ctx context.Context, name string, task worker.Task) error {
	if e.err != nil {
		return e.err
	}
	e.names = append(e.names, name)
	_ = task(ctx)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *MockRepository, n *MockNotifier, ex Executor) *Service {
	svc := NewService(repo, n, ex)
	svc.now = fixedNow
	return svc
}

func validSubmission() Submission {
	return Submission{
		Email:            " director@school.example ",
		OrganizationName: " School 5 ",
		Lang:             "ua",
		Source:           "landing_form",
	}
}

func TestService_Register_Matrix(t *testing.T) {
	tests := []struct {
		name          string
		persistErr    error
		operatorOn    bool
		operatorErr   error
		wantErr       bool
		wantPersisted bool
		wantNotified  bool
	}{
		{"both succeed", nil, true, nil, false, true, true},
		{"persist fails, email succeeds", errors.New("db down"), true, nil, false, false, true},
		{"persist succeeds, email fails", nil, true, errors.New("smtp down"), false, true, false},
		{"both fail", errors.New("db down"), true, errors.New("smtp down"), true, false, false},
		{"persist succeeds, smtp not configured", nil, false, nil, false, true, false},
		{"persist fails, smtp not configured", errors.New("db down"), false, nil, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			n := new(MockNotifier)
			ex := &syncExecutor{}
			svc := newTestService(repo, n, ex)

			repo.On("Create", mock.Anything, mock.AnythingOfType("*leads.Lead")).Return(tt.persistErr).Once()
			n.On("OperatorEnabled").Return(tt.operatorOn)
			if tt.operatorOn {
				n.On("NotifyOperator", mock.Anything, mock.Anything).Return(tt.operatorErr).Once()
			}
			n.On("ThankYouEnabled").Return(true)
			n.On("SendThankYou", mock.Anything, mock.Anything).Return(nil).Once()

			result, err := svc.Register(context.Background(), validSubmission())

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.ErrorIs(t, err, common.ErrDependency)
				var appErr *common.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, http.StatusInternalServerError, appErr.Code)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "director@school.example", result.Email)
				assert.Equal(t, "School 5", result.OrganizationName)
				assert.Equal(t, tt.wantPersisted, result.Persisted)
				assert.Equal(t, tt.wantNotified, result.OperatorNotified)
			}

			// the thank-you email goes out whatever happened above
			assert.Equal(t, []string{"lead_thank_you"}, ex.names)
			repo.AssertExpectations(t)
			n.AssertExpectations(t)
		})
	}
}

func TestService_Register_ValidationBeforeSideEffects(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		msg  string
	}{
		{"missing email", Submission{OrganizationName: "School"}, "Email and organization name are required"},
		{"blank organization", Submission{Email: "a@b.c", OrganizationName: "   "}, "Email and organization name are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			n := new(MockNotifier)
			ex := &syncExecutor{}
			svc := newTestService(repo, n, ex)

			result, err := svc.Register(context.Background(), tt.sub)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, common.ErrValidation)
			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
			assert.Empty(t, ex.names)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			n.AssertNotCalled(t, "NotifyOperator", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Register_AcceptsUnusualEmails(t *testing.T) {
	for _, email := range []string{"director@localhost", "name@example", "not-an-email"} {
		t.Run(email, func(t *testing.T) {
			repo := new(MockRepository)
			n := new(MockNotifier)
			svc := newTestService(repo, n, &syncExecutor{})

			repo.On("Create", mock.Anything, mock.MatchedBy(func(l *Lead) bool {
				return l.Email == email && l.OrganizationName == "Acme"
			})).Return(nil)
			n.On("OperatorEnabled").Return(false)
			n.On("ThankYouEnabled").Return(false)

			result, err := svc.Register(context.Background(), Submission{Email: email, OrganizationName: "Acme"})

			require.NoError(t, err)
			assert.Equal(t, email, result.Email)
			assert.True(t, result.Persisted)
			repo.AssertNumberOfCalls(t, "Create", 1)
		})
	}
}

func TestService_Register_LongLanguageKeptVerbatim(t *testing.T) {
	repo := new(MockRepository)
	n := new(MockNotifier)
	svc := newTestService(repo, n, &syncExecutor{})

	long := strings.Repeat("uk-UA,", 40)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *Lead) bool {
		return l.Language == strings.TrimSpace(long)
	})).Return(nil)
	n.On("OperatorEnabled").Return(false)
	n.On("ThankYouEnabled").Return(false)

	sub := validSubmission()
	sub.Lang = long
	_, err := svc.Register(context.Background(), sub)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Register_NormalizesLead(t *testing.T) {
	repo := new(MockRepository)
	n := new(MockNotifier)
	svc := newTestService(repo, n, &syncExecutor{})

	var stored *Lead
	repo.On("Create", mock.Anything, mock.AnythingOfType("*leads.Lead")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*Lead) }).
		Return(nil)
	n.On("OperatorEnabled").Return(true)
	n.On("NotifyOperator", mock.Anything, mock.MatchedBy(func(d notifications.LeadDetails) bool {
		return d.Source == SourceQuiz && d.QuizAnswers["goal"] == "attention" && d.Language == "pl"
	})).Return(nil)
	n.On("ThankYouEnabled").Return(false)

	_, err := svc.Register(context.Background(), Submission{
		Email:         "a@b.c",
		CenterName:    "Legacy Center",
		Language:      "pl",
		StudentsCount: "120",
		Source:        "QUIZ",
		QuizAnswers:   json.RawMessage(`"{\"goal\":\"attention\"}"`),
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Legacy Center", stored.OrganizationName)
	assert.Equal(t, "pl", stored.Language)
	assert.Equal(t, "120", stored.StudentsCount)
	assert.Equal(t, SourceQuiz, stored.Source)
	assert.JSONEq(t, `{"goal":"attention"}`, string(stored.QuizAnswers))
	assert.Equal(t, fixedNow(), stored.CreatedAt)
	n.AssertExpectations(t)
}

func TestService_Register_UnknownSourceDefaultsToLandingForm(t *testing.T) {
	repo := new(MockRepository)
	n := new(MockNotifier)
	svc := newTestService(repo, n, &syncExecutor{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *Lead) bool {
		return l.Source == SourceLandingForm
	})).Return(nil)
	n.On("OperatorEnabled").Return(false)
	n.On("ThankYouEnabled").Return(false)

	sub := validSubmission()
	sub.Source = "facebook"
	_, err := svc.Register(context.Background(), sub)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Register_ThankYouFailureDoesNotAffectResult(t *testing.T) {
	repo := new(MockRepository)
	n := new(MockNotifier)
	svc := newTestService(repo, n, &syncExecutor{})

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	n.On("OperatorEnabled").Return(false)
	n.On("ThankYouEnabled").Return(true)
	n.On("SendThankYou", mock.Anything, mock.Anything).Return(errors.New("postmark down"))

	result, err := svc.Register(context.Background(), validSubmission())

	require.NoError(t, err)
	assert.True(t, result.Persisted)
}

func TestService_Register_ExecutorStopped(t *testing.T) {
	repo := new(MockRepository)
	n := new(MockNotifier)
	svc := newTestService(repo, n, &syncExecutor{err: worker.ErrStopped})

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	n.On("OperatorEnabled").Return(false)
	n.On("ThankYouEnabled").Return(true)

	result, err := svc.Register(context.Background(), validSubmission())

	require.NoError(t, err)
	assert.True(t, result.Persisted)
	n.AssertNotCalled(t, "SendThankYou", mock.Anything, mock.Anything)
}

func TestService_Register_WithBackgroundExecutor(t *testing.T) {
	repo := new(MockRepository)
	n := new(MockNotifier)
	ex := worker.NewExecutor(time.Second)
	svc := newTestService(repo, n, ex)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	n.On("OperatorEnabled").Return(false)
	n.On("ThankYouEnabled").Return(true)
	n.On("SendThankYou", mock.Anything, mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Register(ctx, validSubmission())
	cancel()
	require.NoError(t, err)

	ex.Wait()
	n.AssertExpectations(t)
}

func TestService_ListLeads(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockNotifier), &syncExecutor{})

	repo.On("List", mock.Anything, 20, 0).Return([]*Lead{{Email: "a@b.c"}}, int64(1), nil).Once()
	items, total, err := svc.ListLeads(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)

	repo.On("List", mock.Anything, 20, 20).Return(nil, int64(0), errors.New("db down")).Once()
	_, _, err = svc.ListLeads(context.Background(), 20, 20)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}
