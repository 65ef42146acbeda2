package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/jobs"
)

type auditStore interface {
	Insert(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, int, error)
}

// AuditService writes the audit trail asynchronously through a worker queue
// so request latency never depends on trail persistence.
type AuditService struct {
	repo   auditStore
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService builds the service and its backing queue. Call Start before
// serving and Stop on shutdown.
func NewAuditService(repo auditStore, logger *zap.Logger, workers, bufferSize int) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("audit", s.handle, jobs.QueueConfig{
		Workers:    workers,
		BufferSize: bufferSize,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains in-flight writes.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// CreateAuditLog enqueues one trail entry. A full queue surfaces as an error
// to the caller, which treats audit failures as non-fatal.
func (s *AuditService) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	return s.queue.Enqueue(jobs.Job{
		ID:      log.ID,
		Type:    log.Action,
		Payload: log,
	})
}

// List pages through the stored trail, newest first.
func (s *AuditService) List(ctx context.Context, page, pageSize int) ([]models.AuditLog, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	logs, total, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return logs, &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	log, ok := job.Payload.(*models.AuditLog)
	if !ok {
		s.logger.Error("audit job carries unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.repo.Insert(ctx, log)
}
