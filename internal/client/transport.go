package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// endpointPlaceholder 部署文档中的占位地址，视同未配置
const endpointPlaceholder = "YOUR_WEB_APP_URL_HERE"

// Config 客户端传输配置
// 端点地址显式传入构造函数，不存在全局可变配置
type Config struct {
	// Endpoint 记录存储端点完整地址，必须以 /exec 结尾
	Endpoint string
	// HTTPClient 可选；为 nil 时使用 http.DefaultClient
	HTTPClient *http.Client
}

// Transport 记录存储端点的 GET 调用器
//
// 主路径：query 参数 GET + JSON 响应。
// 网络层失败时以 callback 参数回退重试一次（对应浏览器端的
// script 注入回退策略），此后不再重试。两条路径都不额外设置超时，
// 取消与截止时间由调用方的 context 控制。
type Transport struct {
	endpoint string
	httpc    *http.Client
	logger   *zap.Logger
}

// NewTransport 创建 Transport；端点配置非法时立即报错
func NewTransport(cfg Config, logger *zap.Logger) (*Transport, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" || endpoint == endpointPlaceholder {
		return nil, ErrEndpointNotConfigured
	}
	if !strings.HasSuffix(endpoint, "/exec") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, endpoint)
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Transport{endpoint: endpoint, httpc: httpc, logger: logger}, nil
}

// Call 发起一次 action 请求，返回原始 JSON 响应体
// params 中的空值会被丢弃，其余值原样作为 query 参数
func (t *Transport) Call(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	reqURL := t.buildURL(params, "")

	t.logger.Debug("发起请求", zap.String("url", reqURL))

	raw, err := t.fetchJSON(ctx, reqURL)
	if err == nil {
		return raw, t.checkIdle(raw)
	}

	// 仅网络层失败触发回退；HTTP 状态错误与解析错误直接上报
	var netErr *url.Error
	if !errors.As(err, &netErr) {
		return nil, err
	}

	t.logger.Debug("请求失败，尝试 callback 回退", zap.Error(err))
	raw, err = t.callWithCallback(ctx, params)
	if err != nil {
		return nil, err
	}
	return raw, t.checkIdle(raw)
}

// callWithCallback callback 参数回退路径
// 生成唯一回调名，请求脚本载荷 name({...})，剥壳后解析 JSON
func (t *Transport) callWithCallback(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	callbackName := fmt.Sprintf("jsonp_callback_%d_%s",
		time.Now().UnixMilli(),
		strings.ReplaceAll(uuid.New().String()[:9], "-", "_"),
	)

	reqURL := t.buildURL(params, callbackName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailed, err)
	}

	resp, err := t.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransportFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailed, err)
	}

	payload := strings.TrimSpace(string(body))
	prefix := callbackName + "("
	if !strings.HasPrefix(payload, prefix) || !strings.HasSuffix(payload, ")") {
		return nil, fmt.Errorf("%w: 回调载荷格式不符", ErrTransportFailed)
	}
	inner := payload[len(prefix) : len(payload)-1]

	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(inner), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailed, err)
	}
	return json.RawMessage(inner), nil
}

func (t *Transport) fetchJSON(ctx context.Context, reqURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP 错误: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var probe map[string]interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("响应不是合法 JSON: %w", err)
	}
	return json.RawMessage(body), nil
}

// checkIdle 识别占位响应：后端在运行但没有收到 action 参数，
// 属于端点部署配置问题而非合法业务响应
func (t *Transport) checkIdle(raw json.RawMessage) error {
	var probe map[string]interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("响应不是合法 JSON: %w", err)
	}

	if _, hasSuccess := probe["success"]; hasSuccess {
		return nil
	}
	if probe["message"] == "Superwork Check-in API" && probe["status"] == "running" {
		return ErrBackendIdle
	}
	return nil
}

func (t *Transport) buildURL(params map[string]string, callbackName string) string {
	q := url.Values{}
	if callbackName != "" {
		q.Set("callback", callbackName)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if params[k] == "" {
			continue
		}
		q.Set(k, params[k])
	}

	return t.endpoint + "?" + q.Encode()
}
