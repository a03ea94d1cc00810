package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lead-capture/pkg/logger"
	"lead-capture/pkg/metrics"
	"lead-capture/pkg/models"
	"lead-capture/pkg/storage"
	"lead-capture/pkg/utils"
	"lead-capture/pkg/validation"
)

var (
	ErrAdminDisabled = errors.New("admin api disabled")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrLeadNotFound  = errors.New("lead not found")
)

// LeadService defines lead capture and the admin access/erasure operations
type LeadService interface {
	// Submit validates payload and persists the resulting lead. Validation
	// problems are returned as the second value with a nil error.
	Submit(ctx context.Context, payload map[string]interface{}, clientIP, userAgent string) (*models.Lead, []string, error)
	List(ctx context.Context, authHeader string) ([]models.Lead, error)
	Delete(ctx context.Context, authHeader, idOrEmail string) error
	Authorize(authHeader string) error

	// Export and Erase skip authorization; they back the offline CLI.
	Export(ctx context.Context) ([]models.Lead, error)
	Erase(ctx context.Context, idOrEmail string) (*models.Lead, error)
}

// Options configures a LeadService
type Options struct {
	// AdminToken authorizes List and Delete. Empty disables both.
	AdminToken string
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

type leadServiceImpl struct {
	store      storage.Store
	adminToken string
	logger     *logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time

	// serializes read-modify-write cycles within this process
	mu sync.Mutex
}

// NewLeadService creates a new lead service over store
func NewLeadService(store storage.Store, opts Options) LeadService {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &leadServiceImpl{
		store:      store,
		adminToken: opts.AdminToken,
		logger:     log.WithComponent("leads"),
		metrics:    opts.Metrics,
		now:        now,
	}
}

func (s *leadServiceImpl) Submit(ctx context.Context, payload map[string]interface{}, clientIP, userAgent string) (*models.Lead, []string, error) {
	lead, problems := validation.ValidateLead(payload, s.now())
	if len(problems) > 0 {
		s.metrics.LeadEvent("rejected")
		return nil, problems, nil
	}

	ipHash := utils.HashIP(clientIP)
	lead.IPHash = &ipHash
	if lead.UserAgent == "" {
		lead.UserAgent = validation.NormalizeUserAgent(userAgent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading leads: %w", err)
	}
	leads = append(leads, *lead)
	if err := s.store.WriteAll(ctx, leads); err != nil {
		return nil, nil, fmt.Errorf("error saving lead: %w", err)
	}

	s.metrics.LeadEvent("accepted")
	s.logger.Infow("Lead captured", "id", lead.ID, "ip_hash", ipHash)
	return lead, nil, nil
}

func (s *leadServiceImpl) Authorize(authHeader string) error {
	if s.adminToken == "" {
		return ErrAdminDisabled
	}
	expected := "Bearer " + s.adminToken
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(expected)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

func (s *leadServiceImpl) List(ctx context.Context, authHeader string) ([]models.Lead, error) {
	if err := s.Authorize(authHeader); err != nil {
		return nil, err
	}
	return s.Export(ctx)
}

func (s *leadServiceImpl) Delete(ctx context.Context, authHeader, idOrEmail string) error {
	if err := s.Authorize(authHeader); err != nil {
		return err
	}
	_, err := s.Erase(ctx, idOrEmail)
	return err
}

func (s *leadServiceImpl) Export(ctx context.Context) ([]models.Lead, error) {
	leads, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading leads: %w", err)
	}
	return leads, nil
}

// Erase removes the first lead whose id or email equals idOrEmail
func (s *leadServiceImpl) Erase(ctx context.Context, idOrEmail string) (*models.Lead, error) {
	key := strings.TrimSpace(idOrEmail)
	if key == "" {
		return nil, ErrLeadNotFound
	}
	email := strings.ToLower(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading leads: %w", err)
	}

	idx := -1
	for i, l := range leads {
		if l.ID == key || l.Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrLeadNotFound
	}

	removed := leads[idx]
	leads = append(leads[:idx], leads[idx+1:]...)
	if err := s.store.WriteAll(ctx, leads); err != nil {
		return nil, fmt.Errorf("error saving leads: %w", err)
	}

	s.metrics.LeadEvent("erased")
	s.logger.Infow("Lead erased", "id", removed.ID)
	return &removed, nil
}
