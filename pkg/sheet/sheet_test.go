package sheet

import (
	"path/filepath"
	"testing"
)

var testHeader = []string{"NO", "Name", "Value"}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.xlsx"))
	if err != nil {
		t.Fatalf("Open 应成功: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_OpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "records.xlsx")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("不存在的文件应被创建: %v", err)
	}
	defer s.Close()

	// 再次打开应读到同一个文件
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("重新打开应成功: %v", err)
	}
	defer s2.Close()
}

func TestStore_EnsureSheet_LazyHeader(t *testing.T) {
	s := openTestStore(t)

	if err := s.EnsureSheet("Data", testHeader); err != nil {
		t.Fatalf("EnsureSheet 应成功: %v", err)
	}

	rows, err := s.Rows("Data")
	if err != nil {
		t.Fatalf("Rows 应成功: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望仅 1 行表头，实际 %d", len(rows))
	}
	for i, h := range testHeader {
		if rows[0][i] != h {
			t.Errorf("表头第 %d 列期望 %s，实际 %s", i, h, rows[0][i])
		}
	}

	// 幂等：已有内容的 sheet 不会被重写表头
	if err := s.AppendRow("Data", []interface{}{"0001", "a", "b"}); err != nil {
		t.Fatalf("AppendRow 应成功: %v", err)
	}
	if err := s.EnsureSheet("Data", testHeader); err != nil {
		t.Fatalf("重复 EnsureSheet 应成功: %v", err)
	}
	count, err := s.RowCount("Data")
	if err != nil {
		t.Fatalf("RowCount 应成功: %v", err)
	}
	if count != 2 {
		t.Errorf("重复 EnsureSheet 不应改动行数，期望 2，实际 %d", count)
	}
}

func TestStore_Rows_MissingSheet(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.Rows("NoSuchSheet")
	if err != nil {
		t.Fatalf("不存在的 sheet 不应报错: %v", err)
	}
	if rows != nil {
		t.Errorf("不存在的 sheet 期望 nil，实际 %v", rows)
	}
}

func TestStore_AppendRow(t *testing.T) {
	s := openTestStore(t)

	if err := s.EnsureSheet("Data", testHeader); err != nil {
		t.Fatalf("EnsureSheet 应成功: %v", err)
	}
	if err := s.AppendRow("Data", []interface{}{"0001", "first", "1"}); err != nil {
		t.Fatalf("AppendRow 应成功: %v", err)
	}
	if err := s.AppendRow("Data", []interface{}{"0002", "second", "2"}); err != nil {
		t.Fatalf("AppendRow 应成功: %v", err)
	}

	rows, err := s.Rows("Data")
	if err != nil {
		t.Fatalf("Rows 应成功: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("期望 3 行（表头+2 数据），实际 %d", len(rows))
	}
	if rows[1][0] != "0001" || rows[2][1] != "second" {
		t.Errorf("数据行内容不符: %v", rows[1:])
	}
}

func TestStore_AppendRow_Persisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.xlsx")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open 应成功: %v", err)
	}
	if err := s.EnsureSheet("Data", testHeader); err != nil {
		t.Fatalf("EnsureSheet 应成功: %v", err)
	}
	if err := s.AppendRow("Data", []interface{}{"0001", "persisted", "x"}); err != nil {
		t.Fatalf("AppendRow 应成功: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close 应成功: %v", err)
	}

	// 重新打开验证落盘
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("重新打开应成功: %v", err)
	}
	defer s2.Close()

	rows, err := s2.Rows("Data")
	if err != nil {
		t.Fatalf("Rows 应成功: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "persisted" {
		t.Errorf("落盘数据不符: %v", rows)
	}
}
