package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type fakePresenceRepo struct {
	people        []domain.Person
	orgs          map[int64]domain.OperatingHours
	checkInOK     bool
	checkIns      []CheckInRequest
	groups        []domain.RoleGroup
	nonAdminGone  int
	adminGone     int
	checkoutCalls int
	hoursSet      map[int64][2]string
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{
		orgs:      map[int64]domain.OperatingHours{},
		hoursSet:  map[int64][2]string{},
		checkInOK: true,
	}
}

func (f *fakePresenceRepo) CreatePerson(_ context.Context, value domain.Person) (domain.Person, error) {
	f.people = append(f.people, value)
	return value, nil
}

func (f *fakePresenceRepo) CreateOrganization(_ context.Context, id int64) (domain.Organization, error) {
	f.orgs[id] = domain.OperatingHours{}
	return domain.Organization{ID: id}, nil
}

func (f *fakePresenceRepo) CheckIn(_ context.Context, userID, orgID int64) (bool, error) {
	f.checkIns = append(f.checkIns, CheckInRequest{UserID: userID, OrganizationID: orgID})
	return f.checkInOK, nil
}

func (f *fakePresenceRepo) ActiveUsersByRole(_ context.Context, _ *int64) ([]domain.RoleGroup, error) {
	return f.groups, nil
}

func (f *fakePresenceRepo) CheckoutNonAdmin(_ context.Context, _ int64) (int, error) {
	f.checkoutCalls++
	return f.nonAdminGone, nil
}

func (f *fakePresenceRepo) CheckoutAdmin(_ context.Context, _ int64) (int, error) {
	return f.adminGone, nil
}

func (f *fakePresenceRepo) SetHours(_ context.Context, orgID int64, opening, closing string) error {
	f.hoursSet[orgID] = [2]string{opening, closing}
	return nil
}

func (f *fakePresenceRepo) OrganizationHours(_ context.Context, orgID int64) (domain.OperatingHours, error) {
	hours, ok := f.orgs[orgID]
	if !ok {
		return domain.OperatingHours{}, domain.ErrNotFound
	}
	return hours, nil
}

func presenceAt(repo *fakePresenceRepo, hhmm string) *PresenceService {
	svc := NewPresenceService(repo)
	svc.now = func() time.Time {
		t, _ := time.Parse("15:04", hhmm)
		return time.Date(2024, 5, 6, t.Hour(), t.Minute(), 0, 0, time.UTC)
	}
	return svc
}

func TestCheckInBatchStatuses(t *testing.T) {
	repo := newFakePresenceRepo()
	svc := NewPresenceService(repo)

	results, err := svc.CheckInBatch(context.Background(), []CheckInRequest{
		{UserID: 1, OrganizationID: 10},
		{UserID: 2, OrganizationID: 10},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, statusCheckedIn, results[0].Status)
	assert.Equal(t, int64(1), results[0].UserID)

	repo.checkInOK = false
	results, err = svc.CheckInBatch(context.Background(), []CheckInRequest{{UserID: 3, OrganizationID: 99}})
	require.NoError(t, err)
	assert.Equal(t, statusNotFound, results[0].Status)
}

func TestGatedCheckInWithinHours(t *testing.T) {
	repo := newFakePresenceRepo()
	repo.orgs[10] = domain.OperatingHours{Opening: "09:00", Closing: "17:00"}

	require.NoError(t, presenceAt(repo, "09:00").GatedCheckIn(context.Background(), 1, 10))
	require.NoError(t, presenceAt(repo, "17:00").GatedCheckIn(context.Background(), 1, 10))
	assert.Len(t, repo.checkIns, 2)
}

func TestGatedCheckInOutsideHours(t *testing.T) {
	repo := newFakePresenceRepo()
	repo.orgs[10] = domain.OperatingHours{Opening: "09:00", Closing: "17:00"}

	err := presenceAt(repo, "17:01").GatedCheckIn(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrOutsideHours)
	assert.Empty(t, repo.checkIns)
}

func TestGatedCheckInUnsetHours(t *testing.T) {
	repo := newFakePresenceRepo()
	repo.orgs[10] = domain.OperatingHours{}

	err := presenceAt(repo, "12:00").GatedCheckIn(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrTimesNotSet)
}

func TestGatedCheckInMissingOrganization(t *testing.T) {
	repo := newFakePresenceRepo()

	err := presenceAt(repo, "12:00").GatedCheckIn(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActiveUsersEmptyIsNotFound(t *testing.T) {
	repo := newFakePresenceRepo()
	svc := NewPresenceService(repo)

	_, err := svc.ActiveUsers(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActiveUsersAtFiltersAfterHours(t *testing.T) {
	repo := newFakePresenceRepo()
	repo.orgs[10] = domain.OperatingHours{Opening: "09:00", Closing: "17:00"}
	repo.groups = []domain.RoleGroup{
		{Role: "admin", Users: []domain.PersonSummary{{ID: 1, Name: "ana"}}},
		{Role: "member", Users: []domain.PersonSummary{{ID: 2, Name: "bo"}}},
	}

	groups, err := presenceAt(repo, "12:00").ActiveUsersAt(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	groups, err = presenceAt(repo, "18:00").ActiveUsersAt(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "admin", groups[0].Role)
}

func TestAdminCheckoutNothingRemoved(t *testing.T) {
	repo := newFakePresenceRepo()
	svc := NewPresenceService(repo)

	err := svc.AdminCheckout(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.adminGone = 1
	assert.NoError(t, svc.AdminCheckout(context.Background(), 10))
	assert.NoError(t, svc.CheckoutAdminLegacy(context.Background(), 10))
}

func TestSetHoursValidation(t *testing.T) {
	repo := newFakePresenceRepo()
	svc := NewPresenceService(repo)

	assert.True(t, domain.IsValidation(svc.SetHours(context.Background(), 10, "9:00", "17:00")))
	assert.True(t, domain.IsValidation(svc.SetHours(context.Background(), 10, "09:00", "24:00")))
	assert.True(t, domain.IsValidation(svc.SetHours(context.Background(), 10, "17:00", "09:00")))
	assert.True(t, domain.IsValidation(svc.SetHours(context.Background(), 10, "+9:00", "17:00")))

	require.NoError(t, svc.SetHours(context.Background(), 10, "09:00", "17:00"))
	assert.Equal(t, [2]string{"09:00", "17:00"}, repo.hoursSet[10])
}

func TestAutoCheckoutOnlyAfterClose(t *testing.T) {
	repo := newFakePresenceRepo()
	repo.orgs[10] = domain.OperatingHours{Opening: "09:00", Closing: "17:00"}

	ran, err := presenceAt(repo, "17:00").AutoCheckout(context.Background(), 10)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, repo.checkoutCalls)

	ran, err = presenceAt(repo, "17:01").AutoCheckout(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, repo.checkoutCalls)
}
