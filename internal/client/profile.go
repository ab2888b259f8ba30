package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// ErrProfileFetchFailed 上游档案接口返回了非预期状态或结构
var ErrProfileFetchFailed = errors.New("获取用户档案失败")

// ProfileConfig 上游人事 API 配置
type ProfileConfig struct {
	// BaseURL 例如 https://api.superwork.tech:9443/api/v1
	BaseURL string
	// LangCode 请求头语言码，默认 "lo"
	LangCode string
	// HTTPClient 可选；为 nil 时使用 http.DefaultClient
	HTTPClient *http.Client
}

// ProfileClient 上游人事 API 客户端（Bearer Token 认证）
// 该 API 是外部协作方：仅接受其嵌套成功码结构，
// 其他任何形状或非 200 状态都视为获取失败
type ProfileClient struct {
	baseURL  string
	langCode string
	httpc    *http.Client
	logger   *zap.Logger
}

// NewProfileClient 创建 ProfileClient
func NewProfileClient(cfg ProfileConfig, logger *zap.Logger) (*ProfileClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("未配置档案 API 地址")
	}
	langCode := cfg.LangCode
	if langCode == "" {
		langCode = "lo"
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileClient{baseURL: cfg.BaseURL, langCode: langCode, httpc: httpc, logger: logger}, nil
}

// 上游响应的嵌套结构：result.serviceResult.code == 200 才算成功
type profileEnvelope struct {
	Result struct {
		ServiceResult struct {
			Code int `json:"code"`
		} `json:"serviceResult"`
		Data struct {
			User *User `json:"user"`
		} `json:"data"`
	} `json:"result"`
}

// GetProfile 以 Bearer Token 拉取用户档案
func (p *ProfileClient) GetProfile(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("langCode", p.langCode)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("档案接口返回非 200", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: HTTP %d", ErrProfileFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}

	var envelope profileEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}
	if envelope.Result.ServiceResult.Code != 200 || envelope.Result.Data.User == nil {
		return nil, ErrProfileFetchFailed
	}

	return envelope.Result.Data.User, nil
}
