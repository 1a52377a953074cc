package faculty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-team/ZPS-InterviewService/internal/domain"
	facultyRepo "github.com/zapis-team/ZPS-InterviewService/internal/infra/storage/faculty"
	"github.com/zapis-team/ZPS-InterviewService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFacultyRepo struct {
	faculty  *domain.Faculty
	err      error
	lockouts []int
	policies []domain.CancellationPolicy
}

func (f *fakeFacultyRepo) GetByID(_ context.Context, _ int64) (*domain.Faculty, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.faculty, nil
}

func (f *fakeFacultyRepo) List(_ context.Context) ([]*domain.Faculty, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Faculty{f.faculty}, nil
}

func (f *fakeFacultyRepo) SetLockoutHours(_ context.Context, _ int64, hours int) error {
	f.lockouts = append(f.lockouts, hours)
	return nil
}

func (f *fakeFacultyRepo) SetCancellationPolicy(_ context.Context, _ int64, policy domain.CancellationPolicy) error {
	f.policies = append(f.policies, policy)
	return nil
}

func newFixture() (*fakeFacultyRepo, *Service) {
	repo := &fakeFacultyRepo{faculty: &domain.Faculty{
		ID:          1,
		Name:        "Факультет программирования",
		AdminUserID: ptr.Ptr(int64(99)),
	}}
	return repo, NewService(repo, nopLogger{})
}

func TestListFaculties(t *testing.T) {
	_, svc := newFixture()

	resp, err := svc.ListFaculties(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Faculties, 1)
	assert.Equal(t, FacultyEntry{ID: 1, Name: "Факультет программирования"}, resp.Faculties[0])
}

func TestSetLockoutHours(t *testing.T) {
	repo, svc := newFixture()

	err := svc.SetLockoutHours(context.Background(), 99, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, []int{12}, repo.lockouts)
}

func TestSetLockoutHoursRange(t *testing.T) {
	repo, svc := newFixture()

	err := svc.SetLockoutHours(context.Background(), 99, 1, domain.MinLockoutHours-1)
	assert.ErrorIs(t, err, ErrInvalidLockout)

	err = svc.SetLockoutHours(context.Background(), 99, 1, domain.MaxLockoutHours+1)
	assert.ErrorIs(t, err, ErrInvalidLockout)

	// Границы диапазона допустимы
	err = svc.SetLockoutHours(context.Background(), 99, 1, domain.MinLockoutHours)
	assert.NoError(t, err)

	err = svc.SetLockoutHours(context.Background(), 99, 1, domain.MaxLockoutHours)
	assert.NoError(t, err)

	assert.Equal(t, []int{domain.MinLockoutHours, domain.MaxLockoutHours}, repo.lockouts)
}

func TestSetCancellationPolicy(t *testing.T) {
	repo, svc := newFixture()

	err := svc.SetCancellationPolicy(context.Background(), 99, 1, "approval")
	require.NoError(t, err)
	assert.Equal(t, []domain.CancellationPolicy{domain.CancellationApproval}, repo.policies)
}

func TestSetCancellationPolicyUnknown(t *testing.T) {
	repo, svc := newFixture()

	err := svc.SetCancellationPolicy(context.Background(), 99, 1, "вручную")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Empty(t, repo.policies)
}

func TestFacultySettingsNotAuthorized(t *testing.T) {
	repo, svc := newFixture()

	err := svc.SetLockoutHours(context.Background(), 10, 1, 12)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.SetCancellationPolicy(context.Background(), 10, 1, "direct")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	assert.Empty(t, repo.lockouts)
	assert.Empty(t, repo.policies)
}

func TestFacultySettingsNotFound(t *testing.T) {
	repo, svc := newFixture()
	repo.err = facultyRepo.ErrFacultyNotFound

	err := svc.SetLockoutHours(context.Background(), 99, 1, 12)
	assert.ErrorIs(t, err, ErrFacultyNotFound)
}
