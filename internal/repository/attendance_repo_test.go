package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/pkg/sheet"
)

func openTestStore(t *testing.T) *sheet.Store {
	t.Helper()
	store, err := sheet.Open(filepath.Join(t.TempDir(), "records.xlsx"))
	if err != nil {
		t.Fatalf("打开测试工作簿失败: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testAttendanceRecord(userID, date string) *model.AttendanceRecord {
	return &model.AttendanceRecord{
		Timestamp:   date + "T09:00:00Z",
		UserID:      userID,
		FirstName:   "Somchai",
		LastName:    "Jaidee",
		DisplayName: "Somchai Jaidee",
		Role:        "staff",
		Position:    "N/A",
		Team:        "N/A",
		Date:        date,
		Time:        "09:00:00",
		Type:        "Manual",
		Location:    "N/A",
	}
}

func TestAttendanceRepo_AppendAssignsOrdinal(t *testing.T) {
	store := openTestStore(t)
	repo := NewAttendanceRepo(store, "Sheet1", time.UTC)
	ctx := context.Background()

	first := testAttendanceRecord("u1", "2025-01-01")
	if err := repo.Append(ctx, first); err != nil {
		t.Fatalf("Append 应成功: %v", err)
	}
	// 惰性建表：仅表头时行数为 1，首条数据行序号 0001
	if first.No != "0001" {
		t.Errorf("首条序号期望 0001，实际 %s", first.No)
	}

	second := testAttendanceRecord("u2", "2025-01-01")
	if err := repo.Append(ctx, second); err != nil {
		t.Fatalf("Append 应成功: %v", err)
	}
	if second.No != "0002" {
		t.Errorf("第二条序号期望 0002，实际 %s", second.No)
	}
}

func TestAttendanceRepo_Exists(t *testing.T) {
	store := openTestStore(t)
	repo := NewAttendanceRepo(store, "Sheet1", time.UTC)
	ctx := context.Background()

	// 空表（sheet 尚未建立）判定不存在
	exists, err := repo.Exists(ctx, "u1", "2025-01-01")
	if err != nil {
		t.Fatalf("Exists 应成功: %v", err)
	}
	if exists {
		t.Error("空表期望 exists=false")
	}

	if err := repo.Append(ctx, testAttendanceRecord("u1", "2025-01-01")); err != nil {
		t.Fatalf("Append 应成功: %v", err)
	}

	cases := []struct {
		name   string
		userID string
		date   string
		want   bool
	}{
		{"同键命中", "u1", "2025-01-01", true},
		{"userId 两侧空白应被忽略", "  u1  ", "2025-01-01", true},
		{"不同日期", "u1", "2025-01-02", false},
		{"不同用户", "u2", "2025-01-01", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Exists(ctx, tc.userID, tc.date)
			if err != nil {
				t.Fatalf("Exists 应成功: %v", err)
			}
			if got != tc.want {
				t.Errorf("期望 %v，实际 %v", tc.want, got)
			}
		})
	}
}

func TestAttendanceRepo_ListByUser(t *testing.T) {
	store := openTestStore(t)
	repo := NewAttendanceRepo(store, "Sheet1", time.UTC)
	ctx := context.Background()

	if err := repo.Append(ctx, testAttendanceRecord("u1", "2025-01-01")); err != nil {
		t.Fatalf("Append 应成功: %v", err)
	}
	if err := repo.Append(ctx, testAttendanceRecord("u2", "2025-01-01")); err != nil {
		t.Fatalf("Append 应成功: %v", err)
	}
	if err := repo.Append(ctx, testAttendanceRecord("u1", "2025-01-02")); err != nil {
		t.Fatalf("Append 应成功: %v", err)
	}

	records, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser 应成功: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("期望 2 条记录，实际 %d", len(records))
	}
	// 表内顺序
	if records[0].Date != "2025-01-01" || records[1].Date != "2025-01-02" {
		t.Errorf("记录顺序不符: %s, %s", records[0].Date, records[1].Date)
	}
	if records[0].No != "0001" || records[1].No != "0003" {
		t.Errorf("序号不符: %s, %s", records[0].No, records[1].No)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll 应成功: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll 期望 3 条，实际 %d", len(all))
	}
}
