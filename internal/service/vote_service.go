package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/dto"
	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/internal/repository"
)

// VoteService 投票业务接口
type VoteService interface {
	// GetVoteOptions 读取全部投票选项
	GetVoteOptions(ctx context.Context) (*dto.VoteOptionsResponse, error)
	// SubmitVote 提交投票；(userId, workJob) 已存在时返回 duplicate=true，不产生写入
	SubmitVote(ctx context.Context, params *dto.SubmitVoteParams) (*dto.SubmitVoteResponse, error)
	// GetVoteResults 统计各选项得票数（降序，平票保持出现顺序）；workJob 为空时统计全部
	GetVoteResults(ctx context.Context, workJob string) (*dto.VoteResultsResponse, error)
	// CheckVote 查询投票状态；workJob 为空时返回用户已投过的全部工作列表
	CheckVote(ctx context.Context, userID, workJob string) (*dto.CheckVoteResponse, error)
	// GetUserVote 返回用户各项工作 → 已选选项的映射；workJob 非空时仅保留该项
	GetUserVote(ctx context.Context, userID, workJob string) (*dto.UserVoteResponse, error)
}

type voteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVoteService 创建 VoteService 实例
func NewVoteService(repo *repository.Repository, logger *zap.Logger) VoteService {
	return &voteService{repo: repo, logger: logger}
}

// ────────────────────── GetVoteOptions ──────────────────────

func (s *voteService) GetVoteOptions(ctx context.Context) (*dto.VoteOptionsResponse, error) {
	options, err := s.repo.Vote.Options(ctx)
	if err != nil {
		s.logger.Error("读取投票选项失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.VoteOptionItem, 0, len(options))
	for _, opt := range options {
		items = append(items, dto.VoteOptionItem{WorkJob: opt.WorkJob, Options: opt.Options})
	}

	return &dto.VoteOptionsResponse{Success: true, VoteOptions: items}, nil
}

// ────────────────────── SubmitVote ──────────────────────

func (s *voteService) SubmitVote(ctx context.Context, params *dto.SubmitVoteParams) (*dto.SubmitVoteResponse, error) {
	if params.Timestamp == "" {
		params.Timestamp = time.Now().Format(time.RFC3339)
	}

	// 追加前重复保护，与签到同一竞态局限
	voted, err := s.repo.Vote.HasVoted(ctx, params.UserID, params.WorkJob)
	if err != nil {
		s.logger.Error("投票重复检查失败", zap.String("user_id", params.UserID), zap.Error(err))
		return nil, err
	}
	if voted {
		s.logger.Info("重复投票被拒绝",
			zap.String("user_id", params.UserID),
			zap.String("work_job", params.WorkJob),
		)
		return &dto.SubmitVoteResponse{
			Success:   false,
			Duplicate: true,
			Message:   "You have already voted for this work/job",
		}, nil
	}

	rec := &model.VoteRecord{
		Timestamp:      params.Timestamp,
		UserID:         params.UserID,
		UserName:       params.UserName,
		WorkJob:        params.WorkJob,
		SelectedOption: params.SelectedOption,
	}
	if err := s.repo.Vote.Append(ctx, rec); err != nil {
		s.logger.Error("追加投票记录失败", zap.String("user_id", params.UserID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("投票成功",
		zap.String("user_id", params.UserID),
		zap.String("work_job", params.WorkJob),
		zap.String("option", params.SelectedOption),
	)

	return &dto.SubmitVoteResponse{Success: true, Message: "Vote submitted successfully"}, nil
}

// ────────────────────── GetVoteResults ──────────────────────

func (s *voteService) GetVoteResults(ctx context.Context, workJob string) (*dto.VoteResultsResponse, error) {
	records, err := s.repo.Vote.List(ctx, workJob)
	if err != nil {
		s.logger.Error("读取投票结果失败", zap.Error(err))
		return nil, err
	}

	// 按出现顺序累计，稳定排序保证平票保持出现顺序
	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if rec.SelectedOption == "" {
			continue
		}
		if _, seen := counts[rec.SelectedOption]; !seen {
			order = append(order, rec.SelectedOption)
		}
		counts[rec.SelectedOption]++
	}

	results := make([]dto.OptionCount, 0, len(order))
	total := 0
	for _, opt := range order {
		results = append(results, dto.OptionCount{Option: opt, Count: counts[opt]})
		total += counts[opt]
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})

	return &dto.VoteResultsResponse{Success: true, Results: results, TotalVotes: total}, nil
}

// ────────────────────── CheckVote ──────────────────────

func (s *voteService) CheckVote(ctx context.Context, userID, workJob string) (*dto.CheckVoteResponse, error) {
	if workJob != "" {
		voted, err := s.repo.Vote.HasVoted(ctx, userID, workJob)
		if err != nil {
			s.logger.Error("查询投票状态失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
		return &dto.CheckVoteResponse{Success: true, HasVoted: voted}, nil
	}

	records, err := s.repo.Vote.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询投票状态失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	seen := make(map[string]bool)
	votedWorkJobs := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.WorkJob == "" || seen[rec.WorkJob] {
			continue
		}
		seen[rec.WorkJob] = true
		votedWorkJobs = append(votedWorkJobs, rec.WorkJob)
	}

	return &dto.CheckVoteResponse{
		Success:       true,
		HasVoted:      len(votedWorkJobs) > 0,
		VotedWorkJobs: votedWorkJobs,
	}, nil
}

// ────────────────────── GetUserVote ──────────────────────

func (s *voteService) GetUserVote(ctx context.Context, userID, workJob string) (*dto.UserVoteResponse, error) {
	records, err := s.repo.Vote.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户投票失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	userVotes := make(map[string]string)
	for _, rec := range records {
		if rec.WorkJob == "" {
			continue
		}
		if workJob != "" && rec.WorkJob != workJob {
			continue
		}
		userVotes[rec.WorkJob] = rec.SelectedOption
	}

	return &dto.UserVoteResponse{Success: true, UserVotes: userVotes}, nil
}
