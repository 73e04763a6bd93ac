package core

import (
	"context"
	"errors"

	"github.com/JonMunkholm/bizreg/internal/logging"
	"github.com/google/uuid"
)

// Store is the persistence the Service needs. *Repository satisfies it.
type Store interface {
	Create(ctx context.Context, business Business, items []Item) (BusinessID, error)
	ListAll(ctx context.Context) ([]BusinessWithItems, error)
}

// Service provides the core business logic for registration submissions.
type Service struct {
	store     Store
	validator *Validator
	newID     func() uuid.UUID
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSubmitLimiter routes every write through l.
func WithSubmitLimiter(l *SubmitLimiter) ServiceOption {
	return func(s *Service) {
		s.store = limitedStore{Store: s.store, limiter: l}
	}
}

// NewService creates a Service writing to store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		validator: NewValidator(),
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestMeta describes the client behind a submission. It only feeds logs.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type requestMetaKey struct{}

// WithRequestMeta attaches meta to ctx.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFrom returns the RequestMeta attached to ctx, or the zero value.
func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

// HandleSubmission parses a raw JSON body and submits it.
// It never returns an error: every outcome is a SubmissionResult.
func (s *Service) HandleSubmission(ctx context.Context, raw []byte) SubmissionResult {
	return s.Submit(ctx, ParsePayload(raw))
}

// Submit validates sub and, when valid, stores it. Invalid submissions never
// reach storage. Storage failures are logged and reported generically.
func (s *Service) Submit(ctx context.Context, sub Submission) SubmissionResult {
	submissionID := s.newID()
	meta := RequestMetaFrom(ctx)
	log := logging.WithFields(ctx,
		"submission_id", submissionID.String(),
		"ip", meta.IP,
	)

	reg, err := s.validator.Validate(sub)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			verr = &ValidationError{Reason: MsgFieldsRequired}
		}
		log.Info("submission rejected", "reason", verr.Reason, "items", len(sub.Items))
		return SubmissionResult{Success: false, Message: verr.Reason}
	}

	reg.Business.SubmissionID = submissionID

	id, err := s.store.Create(ctx, reg.Business, reg.Items)
	if err != nil {
		userMsg := MapError(err)
		log.Error("submission storage failed",
			"error", err,
			"code", userMsg.Code,
			"user_agent", meta.UserAgent,
		)
		return SubmissionResult{Success: false, Message: MsgDatabaseFailure}
	}

	log.Info("submission stored", "business_id", int64(id), "items", len(reg.Items))
	return SubmissionResult{Success: true, Message: MsgSubmitted}
}

// ListBusinesses returns all stored businesses with their items.
func (s *Service) ListBusinesses(ctx context.Context) ([]BusinessWithItems, error) {
	return s.store.ListAll(ctx)
}
