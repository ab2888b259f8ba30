package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/internal/repository"
	"github.com/obie7479/Super-work-web-checkin/pkg/dateutil"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("暂无签到记录可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
//   - 日历导出返回 iCal 文本，每条签到记录映射为一个事件
type ExportService interface {
	// ExportAttendance 导出全部签到记录为 Excel
	ExportAttendance(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar 导出某用户签到历史为 iCal 日历
	ExportCalendar(ctx context.Context, userID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── ExportAttendance ──────────────────────

func (s *exportService) ExportAttendance(ctx context.Context) (*bytes.Buffer, string, error) {
	records, err := s.repo.Attendance.ListAll(ctx)
	if err != nil {
		s.logger.Error("读取签到记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	const sheetName = "Attendance"
	f.SetSheetName("Sheet1", sheetName)

	// 表头行 + 样式
	headerCells := make([]interface{}, len(model.AttendanceHeader))
	for i, h := range model.AttendanceHeader {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	lastCol, _ := excelize.ColumnNumberToName(model.AttendanceColumnCount)
	_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", ErrExportGenerateFail
		}
		row := rec.Row()
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportCalendar ──────────────────────

func (s *exportService) ExportCalendar(ctx context.Context, userID string) (string, error) {
	records, err := s.repo.Attendance.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("读取签到历史失败", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}
	if len(records) == 0 {
		return "", ErrExportNoData
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Superwork Check-in//EN")

	for _, rec := range records {
		start := dateutil.ParseTimestamp(rec.Date+" "+rec.Time, s.loc)
		if start.IsZero() {
			start = dateutil.ParseTimestamp(rec.Timestamp, s.loc)
		}
		if start.IsZero() {
			continue
		}

		evt := cal.AddEvent(fmt.Sprintf("checkin-%s-%s", rec.UserID, rec.Date))
		evt.SetDtStampTime(start)
		evt.SetStartAt(start)
		evt.SetEndAt(start.Add(time.Minute))
		evt.SetSummary(fmt.Sprintf("Check-in (%s)", rec.Type))
		if rec.Location != "" && rec.Location != model.LocationNA {
			evt.SetLocation(rec.Location)
		}
		evt.SetDescription(fmt.Sprintf("%s · %s", rec.DisplayName, rec.Team))
	}

	return cal.Serialize(), nil
}
