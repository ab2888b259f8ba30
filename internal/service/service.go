package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Checkin CheckinService
	Vote    VoteService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) *Service {
	return &Service{
		Checkin: NewCheckinService(repo, loc, logger),
		Vote:    NewVoteService(repo, logger),
		Export:  NewExportService(repo, loc, logger),
	}
}
