package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Store xlsx 工作簿存储封装
//
// 对应线上部署中由表格平台托管的表：一行表头 + 固定列序的数据行。
// 互斥锁只保证单个操作内工作簿文件的完整性；
// 扫描-再-追加这类跨操作序列不具备原子性（与原系统一致的已知局限，
// 并发提交同一键时可能产生重复行）。
type Store struct {
	mu   sync.Mutex
	path string
	f    *excelize.File
}

// Open 打开工作簿，文件不存在时创建
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("初始化工作簿失败: %w", err)
		}
		return &Store{path: path, f: f}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开工作簿失败: %w", err)
	}
	return &Store{path: path, f: f}, nil
}

// EnsureSheet 惰性建表：sheet 不存在时创建，空表时写入表头行
func (s *Store) EnsureSheet(name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("查询 sheet 失败: %w", err)
	}
	if idx == -1 {
		if _, err := s.f.NewSheet(name); err != nil {
			return fmt.Errorf("创建 sheet 失败: %w", err)
		}
	}

	rows, err := s.f.GetRows(name)
	if err != nil {
		return fmt.Errorf("读取 sheet 失败: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := s.f.SetSheetRow(name, "A1", &cells); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}
	return s.save()
}

// Rows 读取全部行（含表头）；sheet 不存在时返回空
func (s *Store) Rows(name string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("查询 sheet 失败: %w", err)
	}
	if idx == -1 {
		return nil, nil
	}

	rows, err := s.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("读取 sheet 失败: %w", err)
	}
	return rows, nil
}

// RowCount 当前行数（含表头）
func (s *Store) RowCount(name string) (int, error) {
	rows, err := s.Rows(name)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// AppendRow 在末尾追加一行并落盘
func (s *Store) AppendRow(name string, values []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.f.GetRows(name)
	if err != nil {
		return fmt.Errorf("读取 sheet 失败: %w", err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("计算单元格坐标失败: %w", err)
	}
	if err := s.f.SetSheetRow(name, cell, &values); err != nil {
		return fmt.Errorf("追加行失败: %w", err)
	}
	return s.save()
}

// Close 关闭底层工作簿
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// save 调用方必须持有 s.mu
func (s *Store) save() error {
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("保存工作簿失败: %w", err)
	}
	return nil
}
