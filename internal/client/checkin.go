package client

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/dto"
	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/pkg/dateutil"
)

// User 上游人事系统返回的用户档案
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Position  string `json:"position"`
	AvatarURL string `json:"avatarURL"`
	Team      *Team  `json:"team"`
}

// Team 用户所属团队
type Team struct {
	Name string `json:"name"`
}

// CheckinClient 签到领域服务
// 组装本地日期时间与用户展示字段后调用记录存储端点；
// 启用位置解析时，位置未解析成功则在本地失败，不发起网络请求
type CheckinClient struct {
	transport *Transport
	resolver  Resolver
	logger    *zap.Logger
	now       func() time.Time
}

// CheckinOption CheckinClient 可选配置
type CheckinOption func(*CheckinClient)

// WithLocationResolver 启用位置解析（同时使位置成为签到前置条件）
func WithLocationResolver(r Resolver) CheckinOption {
	return func(c *CheckinClient) { c.resolver = r }
}

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) CheckinOption {
	return func(c *CheckinClient) { c.now = now }
}

// NewCheckinClient 创建 CheckinClient
func NewCheckinClient(transport *Transport, logger *zap.Logger, opts ...CheckinOption) *CheckinClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CheckinClient{transport: transport, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckDuplicate 查询 (userId, date) 是否已签到
func (c *CheckinClient) CheckDuplicate(ctx context.Context, userID, date string) (bool, error) {
	raw, err := c.transport.Call(ctx, map[string]string{
		"action": "check",
		"userId": userID,
		"date":   date,
	})
	if err != nil {
		return false, err
	}

	var result dto.CheckResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return false, err
	}
	return result.Exists, nil
}

// CheckIn 执行签到
// 重复提交不是 error：结果中 Duplicate=true
func (c *CheckinClient) CheckIn(ctx context.Context, user *User, checkinType model.CheckinType) (*dto.CheckinResponse, error) {
	now := c.now()
	date := dateutil.FormatDate(now)
	timeOfDay := dateutil.FormatTime(now)

	displayName := user.FirstName + " " + user.LastName
	team := "N/A"
	if user.Team != nil && user.Team.Name != "" {
		team = user.Team.Name
	}
	position := user.Position
	if position == "" {
		position = "N/A"
	}

	// 位置前置条件：启用解析时必须拿到可用位置，否则本地失败
	location := model.LocationNA
	if c.resolver != nil {
		resolved, err := c.resolver.Resolve(ctx)
		if err != nil || !resolved.Resolved {
			c.logger.Warn("位置解析失败，签到终止", zap.String("user_id", user.ID), zap.Error(err))
			return nil, ErrLocationRequired
		}
		location = resolved.Formatted()
	}

	raw, err := c.transport.Call(ctx, map[string]string{
		"action":      "checkin",
		"userId":      user.ID,
		"firstName":   user.FirstName,
		"lastName":    user.LastName,
		"displayName": displayName,
		"avatarURL":   user.AvatarURL,
		"role":        user.Role,
		"position":    position,
		"team":        team,
		"date":        date,
		"time":        timeOfDay,
		"timestamp":   now.Format(time.RFC3339),
		"type":        string(checkinType),
		"location":    location,
	})
	if err != nil {
		return nil, err
	}

	var result dto.CheckinResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History 查询签到历史；缺失字段归一化为安全默认值
func (c *CheckinClient) History(ctx context.Context, userID string, limit int) (*dto.HistoryResponse, error) {
	params := map[string]string{
		"action": "history",
		"userId": userID,
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	raw, err := c.transport.Call(ctx, params)
	if err != nil {
		return nil, err
	}

	var result dto.HistoryResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result.History == nil {
		result.History = []dto.HistoryItem{}
	}
	return &result, nil
}
