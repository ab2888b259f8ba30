package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/obie7479/Super-work-web-checkin/internal/dto"
	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/internal/repository"
)

// ── 测试辅助 ──

func setupTestCheckinService() (CheckinService, *mockAttendanceRepo) {
	attendanceRepo := newMockAttendanceRepo()
	repo := &repository.Repository{
		Attendance: attendanceRepo,
		Vote:       newMockVoteRepo(),
	}
	svc := NewCheckinService(repo, time.UTC, zap.NewNop())
	return svc, attendanceRepo
}

func checkinParams(userID, date string) *dto.CheckinParams {
	return &dto.CheckinParams{
		UserID:      userID,
		FirstName:   "Somchai",
		LastName:    "Jaidee",
		DisplayName: "Somchai Jaidee",
		Role:        "staff",
		Date:        date,
		Time:        "09:00:00",
		Timestamp:   date + "T09:00:00Z",
		Type:        "Manual",
		Location:    "13.756331,100.501765",
	}
}

func checkinRecordForDay(i int) (rec model.AttendanceRecord) {
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	return model.AttendanceRecord{
		No:        fmt.Sprintf("%04d", i+1),
		Timestamp: day.Format(time.RFC3339),
		UserID:    "u1",
		Date:      day.Format("2006-01-02"),
		Time:      "09:00:00",
		Type:      "Manual",
		Location:  "N/A",
	}
}

// ── Check 测试 ──

func TestCheckinService_Check_EmptyStore(t *testing.T) {
	svc, _ := setupTestCheckinService()

	result, err := svc.Check(context.Background(), "u1", "2025-01-01")
	if err != nil {
		t.Fatalf("Check 应成功: %v", err)
	}
	if !result.Success {
		t.Error("期望 Success=true")
	}
	if result.Exists {
		t.Error("空表期望 Exists=false")
	}
}

func TestCheckinService_Check_ExistingRecord(t *testing.T) {
	svc, _ := setupTestCheckinService()

	if _, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-01")); err != nil {
		t.Fatalf("CheckIn 应成功: %v", err)
	}

	result, err := svc.Check(context.Background(), "u1", "2025-01-01")
	if err != nil {
		t.Fatalf("Check 应成功: %v", err)
	}
	if !result.Exists {
		t.Error("已有记录期望 Exists=true")
	}
}

// ── CheckIn 测试 ──

func TestCheckinService_CheckIn_FirstOrdinal(t *testing.T) {
	svc, attendanceRepo := setupTestCheckinService()

	result, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-01"))
	if err != nil {
		t.Fatalf("CheckIn 应成功: %v", err)
	}
	if !result.Success {
		t.Fatalf("期望 Success=true，实际 message=%s", result.Message)
	}
	if result.Data == nil || result.Data.UserID != "u1" || result.Data.Date != "2025-01-01" {
		t.Errorf("回显数据不符: %+v", result.Data)
	}
	if len(attendanceRepo.records) != 1 {
		t.Fatalf("期望 1 条记录，实际 %d", len(attendanceRepo.records))
	}
	if attendanceRepo.records[0].No != "0001" {
		t.Errorf("首条记录序号期望 0001，实际 %s", attendanceRepo.records[0].No)
	}
}

func TestCheckinService_CheckIn_Duplicate(t *testing.T) {
	svc, attendanceRepo := setupTestCheckinService()

	if _, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-01")); err != nil {
		t.Fatalf("首次 CheckIn 应成功: %v", err)
	}

	result, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-01"))
	if err != nil {
		t.Fatalf("重复 CheckIn 不应返回 error: %v", err)
	}
	if result.Success {
		t.Error("重复提交期望 Success=false")
	}
	if !result.Duplicate {
		t.Error("重复提交期望 Duplicate=true")
	}
	if len(attendanceRepo.records) != 1 {
		t.Errorf("重复提交不应追加记录，行数期望 1，实际 %d", len(attendanceRepo.records))
	}
}

func TestCheckinService_CheckIn_DifferentDateAllowed(t *testing.T) {
	svc, attendanceRepo := setupTestCheckinService()

	if _, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-01")); err != nil {
		t.Fatalf("CheckIn 应成功: %v", err)
	}
	result, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-02"))
	if err != nil {
		t.Fatalf("CheckIn 应成功: %v", err)
	}
	if !result.Success {
		t.Error("不同日期的签到应被接受")
	}
	if len(attendanceRepo.records) != 2 {
		t.Errorf("期望 2 条记录，实际 %d", len(attendanceRepo.records))
	}
}

func TestCheckinService_CheckIn_Defaults(t *testing.T) {
	svc, attendanceRepo := setupTestCheckinService()

	params := &dto.CheckinParams{
		UserID: "u1",
		Date:   "2025-01-01",
		Time:   "09:00:00",
	}
	if _, err := svc.CheckIn(context.Background(), params); err != nil {
		t.Fatalf("CheckIn 应成功: %v", err)
	}

	rec := attendanceRepo.records[0]
	if rec.Type != "Manual" {
		t.Errorf("缺省 Type 期望 Manual，实际 %s", rec.Type)
	}
	if rec.Location != "N/A" {
		t.Errorf("缺省 Location 期望 N/A，实际 %s", rec.Location)
	}
	if rec.Position != "N/A" || rec.Team != "N/A" {
		t.Errorf("缺省 Position/Team 期望 N/A，实际 %s/%s", rec.Position, rec.Team)
	}
	if rec.Timestamp == "" {
		t.Error("缺省 Timestamp 应被填充")
	}
}

func TestCheckinService_CheckIn_AppendFailure(t *testing.T) {
	svc, attendanceRepo := setupTestCheckinService()
	attendanceRepo.appendErr = errors.New("quota exceeded")

	_, err := svc.CheckIn(context.Background(), checkinParams("u1", "2025-01-01"))
	if err == nil {
		t.Fatal("追加失败应返回 error")
	}
	if len(attendanceRepo.records) != 0 {
		t.Error("追加失败不应留下记录")
	}
}

// ── History 测试 ──

func TestCheckinService_History_SortedDescAndLimited(t *testing.T) {
	svc, _ := setupTestCheckinService()

	for day := 1; day <= 5; day++ {
		date := fmt.Sprintf("2025-01-%02d", day)
		if _, err := svc.CheckIn(context.Background(), checkinParams("u1", date)); err != nil {
			t.Fatalf("CheckIn 应成功: %v", err)
		}
	}
	// 其他用户的记录不应混入
	if _, err := svc.CheckIn(context.Background(), checkinParams("u2", "2025-01-03")); err != nil {
		t.Fatalf("CheckIn 应成功: %v", err)
	}

	result, err := svc.History(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("History 应成功: %v", err)
	}
	if result.Count != 3 || len(result.History) != 3 {
		t.Fatalf("期望 3 条历史，实际 %d", len(result.History))
	}
	for i, item := range result.History {
		if item.UserID != "u1" {
			t.Errorf("第 %d 条不属于 u1: %s", i, item.UserID)
		}
	}
	// 最近在前
	if result.History[0].Date != "2025-01-05" || result.History[2].Date != "2025-01-03" {
		t.Errorf("历史排序不符: %s, %s, %s",
			result.History[0].Date, result.History[1].Date, result.History[2].Date)
	}
}

func TestCheckinService_History_EmptyStore(t *testing.T) {
	svc, _ := setupTestCheckinService()

	result, err := svc.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("History 应成功: %v", err)
	}
	if result.Count != 0 || len(result.History) != 0 {
		t.Errorf("空表期望空历史，实际 %d 条", len(result.History))
	}
}

func TestCheckinService_History_DefaultLimit(t *testing.T) {
	svc, attendanceRepo := setupTestCheckinService()

	for i := 0; i < 60; i++ {
		attendanceRepo.records = append(attendanceRepo.records, checkinRecordForDay(i))
	}

	result, err := svc.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("History 应成功: %v", err)
	}
	if result.Count != DefaultHistoryLimit {
		t.Errorf("缺省 limit 期望 %d，实际 %d", DefaultHistoryLimit, result.Count)
	}
}
