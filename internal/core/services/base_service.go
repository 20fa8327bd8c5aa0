package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/views"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/middleware"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ViewCache memoizes derived views per tenant. Lookup returns the tenant
// generation; AddIfCurrent drops the value if the tenant changed since.
type ViewCache interface {
	Lookup(key views.Key) (any, uint64, bool)
	AddIfCurrent(key views.Key, value any, generation uint64) bool
}

// BaseService provides common functionality for all services
type BaseService struct {
	publisher events.Publisher
	analytics *utils.PosthogClientWrapper
	cache     ViewCache
	clock     func() time.Time
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithPublisher sets where change events go.
func WithPublisher(p events.Publisher) ServiceOption {
	return func(s *BaseService) {
		s.publisher = p
	}
}

// WithAnalytics sets the analytics sink for business events.
func WithAnalytics(a *utils.PosthogClientWrapper) ServiceOption {
	return func(s *BaseService) {
		s.analytics = a
	}
}

// WithViewCache sets the cache used for derived views.
func WithViewCache(c ViewCache) ServiceOption {
	return func(s *BaseService) {
		s.cache = c
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = now
	}
}

func newBaseService(options []ServiceOption) BaseService {
	b := BaseService{
		publisher: events.NopPublisher{},
		clock:     time.Now,
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs err unless it is an expected client-side outcome.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
		s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	return s.clock()
}

func (s *BaseService) emit(ctx context.Context, entity events.Entity, op events.Op, ownerID, recordID string) {
	s.publisher.Publish(ctx, events.Event{
		Entity:   entity,
		Op:       op,
		OwnerID:  ownerID,
		RecordID: recordID,
		At:       s.now().UTC(),
	})
}

func (s *BaseService) track(ownerID, event string, properties map[string]any) {
	s.analytics.Enqueue(ownerID, event, properties)
}

// cached returns the view for key, or the generation to pass to remember on a miss.
func (s *BaseService) cached(key views.Key) (any, uint64, bool) {
	if s.cache == nil {
		return nil, 0, false
	}
	return s.cache.Lookup(key)
}

func (s *BaseService) remember(key views.Key, generation uint64, value any) {
	if s.cache != nil {
		s.cache.AddIfCurrent(key, value, generation)
	}
}

// loadProfile returns the tenant profile, or its defaults when none was saved.
func loadProfile(ctx context.Context, repo portsrepo.ProfileRepositoryFacade, ownerID string) (*domain.Profile, error) {
	profile, err := repo.FindProfile(ctx, ownerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		p := domain.DefaultProfile(ownerID)
		return &p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	return nil
}

func requireNonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, field)
	}
	return nil
}

func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	return trimmed, nil
}

// parseDateRange parses optional YYYY-MM-DD bounds in loc. The upper bound
// covers the whole day.
func parseDateRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, from)
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, to)
		}
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}
	return start, end, nil
}
