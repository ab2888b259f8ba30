package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/obie7479/Super-work-web-checkin/internal/model"
)

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records   []model.AttendanceRecord
	appendErr error
	existsErr error
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Exists(_ context.Context, userID, date string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	wantID := strings.TrimSpace(userID)
	wantDate := strings.TrimSpace(date)
	for _, rec := range m.records {
		if strings.TrimSpace(rec.UserID) == wantID && strings.TrimSpace(rec.Date) == wantDate {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAttendanceRepo) Append(_ context.Context, rec *model.AttendanceRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	// 序号 = 追加前行数（含表头行）
	rec.No = fmt.Sprintf("%04d", len(m.records)+1)
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockAttendanceRepo) ListByUser(_ context.Context, userID string) ([]model.AttendanceRecord, error) {
	wantID := strings.TrimSpace(userID)
	var result []model.AttendanceRecord
	for _, rec := range m.records {
		if strings.TrimSpace(rec.UserID) == wantID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	return append([]model.AttendanceRecord(nil), m.records...), nil
}

// ── Mock VoteRepository ──

type mockVoteRepo struct {
	options   []model.VoteOption
	votes     []model.VoteRecord
	appendErr error
}

func newMockVoteRepo() *mockVoteRepo {
	return &mockVoteRepo{}
}

func (m *mockVoteRepo) Options(_ context.Context) ([]model.VoteOption, error) {
	return m.options, nil
}

func (m *mockVoteRepo) HasVoted(_ context.Context, userID, workJob string) (bool, error) {
	wantID := strings.TrimSpace(userID)
	wantJob := strings.TrimSpace(workJob)
	for _, rec := range m.votes {
		if rec.UserID == wantID && rec.WorkJob == wantJob {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockVoteRepo) Append(_ context.Context, rec *model.VoteRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.votes = append(m.votes, *rec)
	return nil
}

func (m *mockVoteRepo) List(_ context.Context, workJob string) ([]model.VoteRecord, error) {
	wantJob := strings.TrimSpace(workJob)
	var result []model.VoteRecord
	for _, rec := range m.votes {
		if wantJob != "" && rec.WorkJob != wantJob {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (m *mockVoteRepo) ListByUser(_ context.Context, userID string) ([]model.VoteRecord, error) {
	wantID := strings.TrimSpace(userID)
	var result []model.VoteRecord
	for _, rec := range m.votes {
		if rec.UserID == wantID {
			result = append(result, rec)
		}
	}
	return result, nil
}
