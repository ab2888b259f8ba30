package dateutil

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// 表格平台存储的日期列可能是纯文本，也可能是富日期值
// （excelize 读出来是按单元格格式渲染的字符串，或 Excel 序列数）。
// 比较与展示前统一归一化为 YYYY-MM-DD / YYYY-MM-DD HH:MM:SS。

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	TimestampLayout = "2006-01-02 15:04:05"
)

// 单元格中可能出现的日期渲染形式
var cellDateLayouts = []string{
	time.RFC3339,
	TimestampLayout,
	DateLayout,
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"2006-01-02T15:04:05",
}

// FormatDate 格式化为 YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime 格式化为 HH:MM:SS
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// NormalizeStoredDate 将存储单元格的日期值归一化为 YYYY-MM-DD
// 无法识别为日期时返回去除首尾空白的原字符串
func NormalizeStoredDate(cell string, loc *time.Location) string {
	trimmed := strings.TrimSpace(cell)
	if t, ok := parseCell(trimmed, loc); ok {
		return t.In(loc).Format(DateLayout)
	}
	return trimmed
}

// NormalizeStoredTimestamp 将存储单元格的时间戳归一化为 YYYY-MM-DD HH:MM:SS
// 无法识别时返回去除首尾空白的原字符串
func NormalizeStoredTimestamp(cell string, loc *time.Location) string {
	trimmed := strings.TrimSpace(cell)
	if t, ok := parseCell(trimmed, loc); ok {
		return t.In(loc).Format(TimestampLayout)
	}
	return trimmed
}

// ParseTimestamp 尽力解析时间戳字符串，用于历史记录排序
// 解析失败返回零值（排在最后）
func ParseTimestamp(s string, loc *time.Location) time.Time {
	if t, ok := parseCell(strings.TrimSpace(s), loc); ok {
		return t
	}
	return time.Time{}
}

func parseCell(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	// Excel 序列数（富日期值在未设格式时的渲染结果）
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range cellDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
