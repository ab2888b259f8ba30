package client

import "errors"

// ── 客户端错误分类 ──
//
// 配置错误：启动即失败，需运维修正，不重试
// 传输错误：回退重试一次（callback 方式）后上报
// 业务失败（重复提交等）：不是 error，以响应结构体字段表达

var (
	// ErrEndpointNotConfigured 未配置记录存储端点地址
	ErrEndpointNotConfigured = errors.New("未配置记录存储端点地址")
	// ErrInvalidEndpoint 端点地址不是合法的执行路径（必须以 /exec 结尾）
	ErrInvalidEndpoint = errors.New("端点地址无效：必须以 /exec 结尾")
	// ErrBackendIdle 后端返回了占位响应，说明 action 参数未被接收（部署配置问题）
	ErrBackendIdle = errors.New("后端未接收到 action 参数，请检查端点部署")
	// ErrTransportFailed 回退传输同样失败
	ErrTransportFailed = errors.New("请求失败")
	// ErrLocationRequired 位置无法解析，签到在本地终止（未发起网络请求）
	ErrLocationRequired = errors.New("无法获取位置信息，签到已取消")
)
