package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type shortlinkStore interface {
	Create(ctx context.Context, link *models.Shortlink) error
	GetByCode(ctx context.Context, code string) (*models.Shortlink, error)
	ListByUser(ctx context.Context, userID string) ([]models.Shortlink, error)
	SoftDelete(ctx context.Context, id, userID string, deletedAt time.Time) error
	IncrementHits(ctx context.Context, id string) error
}

type shortlinkCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ShortlinkServiceConfig tunes code generation and resolution caching.
type ShortlinkServiceConfig struct {
	CodeLength int
	CacheTTL   time.Duration
}

// ShortlinkService maps short codes onto long intranet URLs. Resolution is
// public and cached; management requires an authenticated owner.
type ShortlinkService struct {
	repo      shortlinkStore
	cache     shortlinkCache
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ShortlinkServiceConfig
}

// NewShortlinkService constructs the service with defaults.
func NewShortlinkService(repo shortlinkStore, cache shortlinkCache, audit auditLogger, validate *validator.Validate, logger *zap.Logger, cfg ShortlinkServiceConfig) *ShortlinkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CodeLength < 3 {
		cfg.CodeLength = 7
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &ShortlinkService{repo: repo, cache: cache, audit: audit, validator: validate, logger: logger, cfg: cfg}
}

// Create registers a shortlink. A custom code is honored when free; otherwise
// a random code is generated, retrying on the rare collision.
func (s *ShortlinkService) Create(ctx context.Context, req dto.CreateShortlinkRequest, actor *models.JWTClaims) (*models.Shortlink, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Var(req.TargetURL, "required,url"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "targetUrl must be a valid URL")
	}
	if err := s.validator.Var(req.Code, "omitempty,alphanum,min=3,max=32"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "code must be 3 to 32 alphanumeric characters")
	}

	code := req.Code
	if code != "" {
		existing, err := s.repo.GetByCode(ctx, code)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check code")
		}
		if existing != nil {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("code %q is taken", code))
		}
	} else {
		generated, err := s.freeCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	link := &models.Shortlink{
		Code:      code,
		TargetURL: req.TargetURL,
		CreatedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shortlink")
	}
	s.emitAudit(ctx, actor, models.AuditActionShortlinkCreate, link)
	return link, nil
}

// List returns the caller's shortlinks.
func (s *ShortlinkService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Shortlink, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	links, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shortlinks")
	}
	return links, nil
}

// Delete soft deletes a shortlink owned by the caller and drops it from the
// resolution cache.
func (s *ShortlinkService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	links, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shortlinks")
	}
	var target *models.Shortlink
	for i := range links {
		if links[i].ID == id {
			target = &links[i]
			break
		}
	}
	if target == nil {
		return appErrors.ErrNotFound
	}
	if err := s.repo.SoftDelete(ctx, id, actor.UserID, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shortlink")
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, shortlinkCacheKey(target.Code)); err != nil {
			s.logger.Warn("failed to evict shortlink cache", zap.Error(err))
		}
	}
	s.emitAudit(ctx, actor, models.AuditActionShortlinkDelete, target)
	return nil
}

// Resolve maps a code onto its target URL and counts the hit. Resolution
// reads through the cache; hit counting is best effort.
func (s *ShortlinkService) Resolve(ctx context.Context, code string) (string, error) {
	if s.cache != nil {
		var cached models.Shortlink
		if err := s.cache.Get(ctx, shortlinkCacheKey(code), &cached); err == nil {
			s.countHit(ctx, cached.ID)
			return cached.TargetURL, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("shortlink cache read failed", zap.Error(err))
		}
	}

	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrNotFound
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve shortlink")
	}
	if link.DeletedAt != nil {
		return "", appErrors.ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, shortlinkCacheKey(code), link, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("shortlink cache write failed", zap.Error(err))
		}
	}
	s.countHit(ctx, link.ID)
	return link.TargetURL, nil
}

const codeAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (s *ShortlinkService) freeCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomCode(s.cfg.CodeLength)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate code")
		}
		_, err = s.repo.GetByCode(ctx, code)
		if errors.Is(err, sql.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check code")
		}
	}
	return "", appErrors.Clone(appErrors.ErrInternal, "could not find a free code")
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

func shortlinkCacheKey(code string) string {
	return "shortlink:" + code
}

func (s *ShortlinkService) countHit(ctx context.Context, id string) {
	if err := s.repo.IncrementHits(ctx, id); err != nil {
		s.logger.Warn("failed to count shortlink hit", zap.Error(err))
	}
}

func (s *ShortlinkService) emitAudit(ctx context.Context, actor *models.JWTClaims, action string, link *models.Shortlink) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"code":      link.Code,
		"targetUrl": link.TargetURL,
	})
	log := &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "shortlink",
		ResourceID: &link.ID,
		NewValues:  payload,
		IPAddress:  "system",
		UserAgent:  "shortlink-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to create shortlink audit", zap.Error(err))
	}
}
