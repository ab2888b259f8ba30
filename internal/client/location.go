package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Location 位置解析结果
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Source    string // "gps" | "ip" | "none"
	Address   string // IP 定位附带的粗略地址，GPS 定位为空
	Resolved  bool
}

// Formatted 生成落库用的位置字符串
// "lat,lng"、"address (lat,lng)" 或未解析时的 "N/A"
func (l Location) Formatted() string {
	if !l.Resolved {
		return "N/A"
	}
	coords := fmt.Sprintf("%.6f,%.6f", l.Latitude, l.Longitude)
	if l.Address != "" {
		return fmt.Sprintf("%s (%s)", l.Address, coords)
	}
	return coords
}

// Resolver 位置解析器
// GPS 来源由宿主环境（移动端 WebView）注入，本包只定义接口；
// IP 定位与链式回退在此实现
type Resolver interface {
	Resolve(ctx context.Context) (Location, error)
}

// ── IP 定位 ──

// DefaultIPAPIEndpoint ip-api.com 免费接口（无需 API Key）
const DefaultIPAPIEndpoint = "http://ip-api.com/json/?fields=status,message,lat,lon,city,regionName,country,query"

// IPResolver 基于 IP 的粗定位
type IPResolver struct {
	endpoint string
	httpc    *http.Client
}

// NewIPResolver 创建 IPResolver；endpoint 为空时使用默认接口
func NewIPResolver(endpoint string, httpc *http.Client) *IPResolver {
	if endpoint == "" {
		endpoint = DefaultIPAPIEndpoint
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &IPResolver{endpoint: endpoint, httpc: httpc}
}

type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Query      string  `json:"query"`
}

func (r *IPResolver) Resolve(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpc.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("IP 定位接口返回 HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Location{}, err
	}

	var data ipAPIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return Location{}, err
	}
	if data.Status != "success" || (data.Lat == 0 && data.Lon == 0) {
		return Location{}, fmt.Errorf("IP 定位失败: %s", data.Message)
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{data.City, data.RegionName, data.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return Location{
		Latitude:  data.Lat,
		Longitude: data.Lon,
		Source:    "ip",
		Address:   strings.Join(parts, ", "),
		Resolved:  true,
	}, nil
}

// ── 链式回退 ──

// ChainResolver 依次尝试各解析器（GPS 优先、IP 回退）
// 全部失败时返回未解析的 Location，不返回 error（由调用方决定是否必需）
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver 创建 ChainResolver
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

func (r *ChainResolver) Resolve(ctx context.Context) (Location, error) {
	for _, resolver := range r.resolvers {
		loc, err := resolver.Resolve(ctx)
		if err == nil && loc.Resolved {
			return loc, nil
		}
	}
	return Location{Source: "none"}, nil
}
