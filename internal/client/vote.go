package client

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/dto"
)

// VoteClient 投票领域服务
// 记录存储端点的薄封装：缺失字段归一化为安全默认值
// （空列表、零计数、false、空映射）
type VoteClient struct {
	transport *Transport
	logger    *zap.Logger
	now       func() time.Time
}

// NewVoteClient 创建 VoteClient
func NewVoteClient(transport *Transport, logger *zap.Logger) *VoteClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoteClient{transport: transport, logger: logger, now: time.Now}
}

// GetVoteOptions 拉取全部投票选项
func (c *VoteClient) GetVoteOptions(ctx context.Context) ([]dto.VoteOptionItem, error) {
	raw, err := c.transport.Call(ctx, map[string]string{"action": "getVoteOptions"})
	if err != nil {
		return nil, err
	}

	var result dto.VoteOptionsResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result.VoteOptions == nil {
		return []dto.VoteOptionItem{}, nil
	}
	return result.VoteOptions, nil
}

// SubmitVote 提交投票；重复提交不是 error，结果中 Duplicate=true
func (c *VoteClient) SubmitVote(ctx context.Context, userID, userName, workJob, selectedOption string) (*dto.SubmitVoteResponse, error) {
	raw, err := c.transport.Call(ctx, map[string]string{
		"action":         "submitVote",
		"userId":         userID,
		"userName":       userName,
		"workJob":        workJob,
		"selectedOption": selectedOption,
		"timestamp":      c.now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	var result dto.SubmitVoteResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetVoteResults 拉取投票统计；workJob 为空时统计全部
func (c *VoteClient) GetVoteResults(ctx context.Context, workJob string) (*dto.VoteResultsResponse, error) {
	raw, err := c.transport.Call(ctx, map[string]string{
		"action":  "getVoteResults",
		"workJob": workJob,
	})
	if err != nil {
		return nil, err
	}

	var result dto.VoteResultsResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		result.Results = []dto.OptionCount{}
	}
	return &result, nil
}

// CheckVote 查询投票状态；workJob 为空时返回已投过的全部工作列表
func (c *VoteClient) CheckVote(ctx context.Context, userID, workJob string) (*dto.CheckVoteResponse, error) {
	raw, err := c.transport.Call(ctx, map[string]string{
		"action":  "checkVote",
		"userId":  userID,
		"workJob": workJob,
	})
	if err != nil {
		return nil, err
	}

	var result dto.CheckVoteResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result.VotedWorkJobs == nil {
		result.VotedWorkJobs = []string{}
	}
	return &result, nil
}

// GetUserVote 查询用户各项工作的已选选项映射
func (c *VoteClient) GetUserVote(ctx context.Context, userID, workJob string) (map[string]string, error) {
	raw, err := c.transport.Call(ctx, map[string]string{
		"action":  "getUserVote",
		"userId":  userID,
		"workJob": workJob,
	})
	if err != nil {
		return nil, err
	}

	var result dto.UserVoteResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result.UserVotes == nil {
		return map[string]string{}, nil
	}
	return result.UserVotes, nil
}
