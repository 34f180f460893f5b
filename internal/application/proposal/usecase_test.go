package proposal

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuananh-dev/qltb-api/internal/domain"
	"github.com/tuananh-dev/qltb-api/internal/domain/entity"
	"github.com/tuananh-dev/qltb-api/internal/domain/proposal"
	"github.com/tuananh-dev/qltb-api/internal/domain/repository"
)

// fakeProposalRepo bản cài trong bộ nhớ của ProposalRepository cho test.
type fakeProposalRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*entity.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{byID: map[string]*entity.Proposal{}}
}

func clone(p *entity.Proposal) *entity.Proposal {
	cp := *p
	return &cp
}

func (f *fakeProposalRepo) Create(p *entity.Proposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("p-%d", f.seq)
	}
	f.byID[p.ID] = clone(p)
	return nil
}

func (f *fakeProposalRepo) GetByID(id string) (*entity.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

func (f *fakeProposalRepo) GetForUpdate(id string) (*entity.Proposal, error) {
	return f.GetByID(id)
}

func (f *fakeProposalRepo) UpdateStatus(p *entity.Proposal, expected entity.ProposalStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[p.ID]
	if !ok || cur.Status != expected {
		return false, nil
	}
	f.byID[p.ID] = clone(p)
	return true, nil
}

func (f *fakeProposalRepo) List(filter repository.ProposalFilter) ([]*entity.Proposal, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Proposal
	for _, p := range f.byID {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.CreatedByID != "" && p.CreatedByID != filter.CreatedByID {
			continue
		}
		all = append(all, clone(p))
	}
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (f *fakeProposalRepo) Stats() (*repository.ProposalStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s repository.ProposalStats
	for _, p := range f.byID {
		switch p.Status {
		case entity.StatusPending:
			s.Pending++
		case entity.StatusITProcessing:
			s.Processing++
		case entity.StatusWaitingApproval:
			s.WaitingApproval++
		case entity.StatusApproved:
			s.Approved++
		case entity.StatusRejected, entity.StatusITRejected:
			s.Rejected++
		case entity.StatusCompleted:
			s.Completed++
		}
	}
	return &s, nil
}

// fakeTxRunner chạy callback dưới một mutex, mô phỏng transaction tuần tự.
type fakeTxRunner struct {
	mu        sync.Mutex
	proposals repository.ProposalRepository
	movements repository.MovementRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	proposals repository.ProposalRepository,
	movements repository.MovementRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.proposals, f.movements)
}

func newTestUseCase() (*UseCase, *fakeProposalRepo) {
	repo := newFakeProposalRepo()
	return NewUseCase(&fakeTxRunner{proposals: repo}, repo), repo
}

var (
	requester = entity.Identity{UserID: "u-1", Name: "Nguyễn Văn A", Role: entity.RoleUser}
	itStaff   = entity.Identity{UserID: "it-1", Name: "Trần IT", Role: entity.RoleIT}
	director  = entity.Identity{UserID: "dir-1", Name: "Giám đốc", Role: entity.RoleDirector}
)

func TestCreateDefaultsAndValidation(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair, Title: "Máy chậm"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, p.Status)
	assert.Equal(t, entity.PriorityMedium, p.Priority)
	assert.Equal(t, "u-1", p.CreatedByID)
	assert.Equal(t, "Nguyễn Văn A", p.CreatedByName)

	_, err = uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair})
	require.ErrorIs(t, err, domain.ErrValidation, "thiếu tiêu đề")

	_, err = uc.Create(ctx, requester, CreateInput{Type: "bao_tri", Title: "x"})
	require.ErrorIs(t, err, domain.ErrValidation, "loại ngoài danh sách")

	_, err = uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair, Title: "x", Priority: "critical"})
	require.ErrorIs(t, err, domain.ErrValidation, "ưu tiên ngoài danh sách")
}

func TestFullApprovalScenario(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair, Title: "Máy chậm"})
	require.NoError(t, err)
	require.Equal(t, entity.StatusPending, p.Status)

	p, err = uc.Transition(ctx, p.ID, proposal.OpProcess, itStaff, "kiểm tra phần cứng", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusITProcessing, p.Status)

	p, err = uc.Transition(ctx, p.ID, proposal.OpSubmitToDirector, itStaff, "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWaitingApproval, p.Status)
	assert.Equal(t, "kiểm tra phần cứng", p.ITNote, "giữ ghi chú lúc tiếp nhận")

	p, err = uc.Transition(ctx, p.ID, proposal.OpApprove, director, "", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, p.Status)

	p, err = uc.Transition(ctx, p.ID, proposal.OpComplete, itStaff, "", "Đã nâng RAM")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, p.Status)
	assert.Equal(t, "Đã nâng RAM", p.Result)

	// Đề xuất đã hoàn thành thì mọi thao tác tiếp theo đều bất hợp lệ.
	_, err = uc.Transition(ctx, p.ID, proposal.OpProcess, itStaff, "", "")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionErrors(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Transition(ctx, "khong-ton-tai", proposal.OpProcess, itStaff, "", "")
	require.ErrorIs(t, err, domain.ErrNotFound)

	p, err := uc.Create(ctx, requester, CreateInput{Type: entity.TypeUpgrade, Title: "Thêm RAM"})
	require.NoError(t, err)

	// Từ chối không ghi lý do bị chặn trước khi đụng trạng thái.
	_, err = uc.Transition(ctx, p.ID, proposal.OpITReject, itStaff, "", "")
	require.ErrorIs(t, err, domain.ErrValidation)
	got, err := uc.Get(ctx, itStaff, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status)

	// Người dùng thường không được tiếp nhận.
	_, err = uc.Transition(ctx, p.ID, proposal.OpProcess, requester, "", "")
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConcurrentProcessOnlyOneWins(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair, Title: "Máy chậm"})
	require.NoError(t, err)

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Transition(ctx, p.ID, proposal.OpProcess, itStaff, "", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount int
	for err := range errs {
		if err == nil {
			okCount++
		} else {
			require.ErrorIs(t, err, domain.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, okCount, "chỉ một lời gọi process được thành công")
}

func TestListVisibilityByRole(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	other := entity.Identity{UserID: "u-2", Name: "Lê Thị B", Role: entity.RoleUser}
	_, err := uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair, Title: "Của A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, other, CreateInput{Type: entity.TypePurchase, Title: "Của B"})
	require.NoError(t, err)

	items, total, err := uc.List(ctx, requester, ListInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	for _, p := range items {
		assert.Equal(t, "u-1", p.CreatedByID, "user chỉ thấy đề xuất của mình")
	}

	_, total, err = uc.List(ctx, itStaff, ListInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	admin := entity.Identity{UserID: "a-1", Role: entity.RoleAdmin}
	_, total, err = uc.List(ctx, admin, ListInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// Lọc theo loại.
	items, total, err = uc.List(ctx, itStaff, ListInput{Type: entity.TypePurchase})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Của B", items[0].Title)

	_, _, err = uc.List(ctx, itStaff, ListInput{Status: "archived"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetOwnershipCheck(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, requester, CreateInput{Type: entity.TypeRepair, Title: "Của A"})
	require.NoError(t, err)

	other := entity.Identity{UserID: "u-2", Role: entity.RoleUser}
	_, err = uc.Get(ctx, other, p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.Get(ctx, requester, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = uc.Get(ctx, director, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = uc.Get(ctx, director, "khong-ton-tai")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsBuckets(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	mk := func(status entity.ProposalStatus) {
		p := &entity.Proposal{Type: entity.TypeRepair, Title: "x", Priority: entity.PriorityMedium,
			CreatedByID: "u-1", Status: status}
		require.NoError(t, repo.Create(p))
	}
	mk(entity.StatusPending)
	mk(entity.StatusPending)
	mk(entity.StatusITProcessing)
	mk(entity.StatusWaitingApproval)
	mk(entity.StatusApproved)
	mk(entity.StatusRejected)
	mk(entity.StatusITRejected)
	mk(entity.StatusCompleted)

	s, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.Pending)
	assert.EqualValues(t, 1, s.Processing)
	assert.EqualValues(t, 1, s.WaitingApproval)
	assert.EqualValues(t, 1, s.Approved)
	assert.EqualValues(t, 2, s.Rejected, "rejected gộp cả it_rejected")
	assert.EqualValues(t, 1, s.Completed)
}
