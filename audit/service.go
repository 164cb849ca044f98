// api/audit/service.go
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/sagelms/sage/api/logging"
)

type Service interface {
	Record(ctx context.Context, entry Entry)
	QueryEntries(ctx context.Context, from, to time.Time, userID string) ([]Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Record writes the entry best-effort. Audit failures are logged and never
// propagate into the recorded operation.
func (s *service) Record(ctx context.Context, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := s.repo.Index(ctx, entry); err != nil {
		logger.Warn("Failed to index audit entry",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("userID", entry.UserID))
	}
}

func (s *service) QueryEntries(ctx context.Context, from, to time.Time, userID string) ([]Entry, error) {
	return s.repo.Query(ctx, from, to, userID)
}
