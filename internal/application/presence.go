package application

import (
	"context"
	"time"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

const (
	statusCheckedIn = "Checked in successfully"
	statusNotFound  = "User or Organization not found"
)

// CheckInRequest pairs a user with the organization they check in to.
type CheckInRequest struct {
	UserID         int64
	OrganizationID int64
}

// PresenceService orchestrates check-in and checkout against the graph store.
type PresenceService struct {
	repo domain.PresenceRepository
	now  func() time.Time
}

func NewPresenceService(repo domain.PresenceRepository) *PresenceService {
	return &PresenceService{repo: repo, now: time.Now}
}

func (s *PresenceService) currentClock() domain.Clock {
	t := s.now()
	return domain.Clock(t.Hour()*60 + t.Minute())
}

func (s *PresenceService) CreatePerson(ctx context.Context, value domain.Person) (domain.Person, error) {
	if value.ID == 0 {
		return domain.Person{}, domain.Invalid("id", "is required")
	}
	if value.Name == "" {
		return domain.Person{}, domain.Invalid("name", "is required")
	}
	return s.repo.CreatePerson(ctx, value)
}

func (s *PresenceService) CreateOrganization(ctx context.Context, id int64) (domain.Organization, error) {
	if id == 0 {
		return domain.Organization{}, domain.Invalid("id", "is required")
	}
	return s.repo.CreateOrganization(ctx, id)
}

// CheckInBatch checks users in one by one and reports a per-user status.
// A store failure aborts the whole batch.
func (s *PresenceService) CheckInBatch(ctx context.Context, requests []CheckInRequest) ([]domain.CheckInStatus, error) {
	results := make([]domain.CheckInStatus, 0, len(requests))
	for _, req := range requests {
		matched, err := s.repo.CheckIn(ctx, req.UserID, req.OrganizationID)
		if err != nil {
			return nil, err
		}
		status := statusCheckedIn
		if !matched {
			status = statusNotFound
		}
		results = append(results, domain.CheckInStatus{UserID: req.UserID, Status: status})
	}
	return results, nil
}

// GatedCheckIn admits a user only while the organization is open.
func (s *PresenceService) GatedCheckIn(ctx context.Context, userID, orgID int64) error {
	window, err := s.operatingWindow(ctx, orgID)
	if err != nil {
		return err
	}
	if !window.Contains(s.currentClock()) {
		return domain.ErrOutsideHours
	}
	matched, err := s.repo.CheckIn(ctx, userID, orgID)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

// ActiveUsers lists users currently checked in anywhere, grouped by role.
func (s *PresenceService) ActiveUsers(ctx context.Context) ([]domain.RoleGroup, error) {
	groups, err := s.repo.ActiveUsersByRole(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, domain.ErrNotFound
	}
	return groups, nil
}

// ActiveUsersAt lists users checked in to one organization. Outside its
// operating hours only the admin group is reported.
func (s *PresenceService) ActiveUsersAt(ctx context.Context, orgID int64) ([]domain.RoleGroup, error) {
	window, err := s.operatingWindow(ctx, orgID)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.ActiveUsersByRole(ctx, &orgID)
	if err != nil {
		return nil, err
	}
	if !window.Contains(s.currentClock()) {
		admins := groups[:0]
		for _, g := range groups {
			if g.Role == "admin" {
				admins = append(admins, g)
			}
		}
		groups = admins
	}
	if len(groups) == 0 {
		return nil, domain.ErrNotFound
	}
	return groups, nil
}

// CheckoutNonAdmin removes every non-admin check-in at the organization.
func (s *PresenceService) CheckoutNonAdmin(ctx context.Context, orgID int64) error {
	_, err := s.repo.CheckoutNonAdmin(ctx, orgID)
	return err
}

// CheckoutAdminLegacy removes admin check-ins and succeeds even when there
// were none.
func (s *PresenceService) CheckoutAdminLegacy(ctx context.Context, orgID int64) error {
	_, err := s.repo.CheckoutAdmin(ctx, orgID)
	return err
}

// AdminCheckout removes admin check-ins and reports not-found when nothing
// was removed.
func (s *PresenceService) AdminCheckout(ctx context.Context, orgID int64) error {
	removed, err := s.repo.CheckoutAdmin(ctx, orgID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetHours validates and stores the organization's operating window.
// A missing organization is a silent no-op; nothing is created.
func (s *PresenceService) SetHours(ctx context.Context, orgID int64, opening, closing string) error {
	if _, err := domain.ParseClock(opening); err != nil {
		return domain.Invalid("opening_time", err.Error())
	}
	if _, err := domain.ParseClock(closing); err != nil {
		return domain.Invalid("closing_time", err.Error())
	}
	if _, err := domain.NewWindow(opening, closing); err != nil {
		return domain.Invalid("closing_time", "must not precede opening_time")
	}
	return s.repo.SetHours(ctx, orgID, opening, closing)
}

// AutoCheckout evicts non-admin users once the organization has closed.
// It reports whether an eviction ran.
func (s *PresenceService) AutoCheckout(ctx context.Context, orgID int64) (bool, error) {
	window, err := s.operatingWindow(ctx, orgID)
	if err != nil {
		return false, err
	}
	if !window.Elapsed(s.currentClock()) {
		return false, nil
	}
	if _, err := s.repo.CheckoutNonAdmin(ctx, orgID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PresenceService) operatingWindow(ctx context.Context, orgID int64) (domain.Window, error) {
	hours, err := s.repo.OrganizationHours(ctx, orgID)
	if err != nil {
		return domain.Window{}, err
	}
	if hours.Opening == "" || hours.Closing == "" {
		return domain.Window{}, domain.ErrTimesNotSet
	}
	window, err := domain.NewWindow(hours.Opening, hours.Closing)
	if err != nil {
		return domain.Window{}, domain.ErrTimesNotSet
	}
	return window, nil
}
