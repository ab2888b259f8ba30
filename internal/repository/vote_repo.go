package repository

import (
	"context"
	"strings"

	"github.com/obie7479/Super-work-web-checkin/internal/model"
	"github.com/obie7479/Super-work-web-checkin/pkg/sheet"
)

// VoteRepository 投票数据访问接口
type VoteRepository interface {
	// Options 读取投票选项参考数据（表不存在时惰性建表后返回空）
	Options(ctx context.Context) ([]model.VoteOption, error)
	// HasVoted 按 (userId, workJob) 逐行扫描是否已投票
	HasVoted(ctx context.Context, userID, workJob string) (bool, error)
	// Append 追加一条投票记录
	Append(ctx context.Context, rec *model.VoteRecord) error
	// List 返回投票记录；workJob 为空时不过滤
	List(ctx context.Context, workJob string) ([]model.VoteRecord, error)
	// ListByUser 返回该用户的全部投票记录
	ListByUser(ctx context.Context, userID string) ([]model.VoteRecord, error)
}

// voteRepo VoteRepository 的工作簿实现
type voteRepo struct {
	store        *sheet.Store
	optionsSheet string
	resultsSheet string
}

// NewVoteRepo 创建 VoteRepository 实例
func NewVoteRepo(store *sheet.Store, optionsSheet, resultsSheet string) VoteRepository {
	return &voteRepo{store: store, optionsSheet: optionsSheet, resultsSheet: resultsSheet}
}

func (r *voteRepo) Options(_ context.Context) ([]model.VoteOption, error) {
	if err := r.store.EnsureSheet(r.optionsSheet, model.VoteOptionsHeader); err != nil {
		return nil, err
	}

	rows, err := r.store.Rows(r.optionsSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var options []model.VoteOption
	for _, row := range rows[1:] {
		workJob := strings.TrimSpace(cell(row, 0))
		if workJob == "" {
			continue
		}
		var opts []string
		for _, c := range row[1:] {
			if v := strings.TrimSpace(c); v != "" {
				opts = append(opts, v)
			}
		}
		// 无任何选项的行同样过滤
		if len(opts) == 0 {
			continue
		}
		options = append(options, model.VoteOption{WorkJob: workJob, Options: opts})
	}
	return options, nil
}

func (r *voteRepo) HasVoted(_ context.Context, userID, workJob string) (bool, error) {
	rows, err := r.store.Rows(r.resultsSheet)
	if err != nil {
		return false, err
	}
	if len(rows) <= 1 {
		return false, nil
	}

	wantID := strings.TrimSpace(userID)
	wantJob := strings.TrimSpace(workJob)

	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, model.VoteColUserID))
		job := strings.TrimSpace(cell(row, model.VoteColWorkJob))
		if id == wantID && job == wantJob {
			return true, nil
		}
	}
	return false, nil
}

func (r *voteRepo) Append(_ context.Context, rec *model.VoteRecord) error {
	if err := r.store.EnsureSheet(r.resultsSheet, model.VoteResultsHeader); err != nil {
		return err
	}
	return r.store.AppendRow(r.resultsSheet, rec.Row())
}

func (r *voteRepo) List(_ context.Context, workJob string) ([]model.VoteRecord, error) {
	rows, err := r.store.Rows(r.resultsSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	wantJob := strings.TrimSpace(workJob)
	var records []model.VoteRecord

	for _, row := range rows[1:] {
		rec := rowToVoteRecord(row)
		if wantJob != "" && rec.WorkJob != wantJob {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *voteRepo) ListByUser(_ context.Context, userID string) ([]model.VoteRecord, error) {
	rows, err := r.store.Rows(r.resultsSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	wantID := strings.TrimSpace(userID)
	var records []model.VoteRecord

	for _, row := range rows[1:] {
		rec := rowToVoteRecord(row)
		if rec.UserID != wantID {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func rowToVoteRecord(row []string) model.VoteRecord {
	return model.VoteRecord{
		Timestamp:      strings.TrimSpace(cell(row, model.VoteColTimestamp)),
		UserID:         strings.TrimSpace(cell(row, model.VoteColUserID)),
		UserName:       cell(row, model.VoteColUserName),
		WorkJob:        strings.TrimSpace(cell(row, model.VoteColWorkJob)),
		SelectedOption: strings.TrimSpace(cell(row, model.VoteColSelectedOption)),
	}
}
