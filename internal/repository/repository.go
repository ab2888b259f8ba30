package repository

import (
	"time"

	"github.com/obie7479/Super-work-web-checkin/config"
	"github.com/obie7479/Super-work-web-checkin/pkg/sheet"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Attendance AttendanceRepository
	Vote       VoteRepository
}

// NewRepository 创建 Repository 聚合（基于工作簿存储）
func NewRepository(store *sheet.Store, cfg *config.SheetConfig, loc *time.Location) *Repository {
	return &Repository{
		Attendance: NewAttendanceRepo(store, cfg.CheckinSheet, loc),
		Vote:       NewVoteRepo(store, cfg.VoteOptionsSheet, cfg.VoteResultsSheet),
	}
}
