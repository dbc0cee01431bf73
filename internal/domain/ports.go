package domain

import "context"

// PresenceRepository covers the check-in domain: people, organizations and
// CHECKED_IN edges.
type PresenceRepository interface {
	CreatePerson(ctx context.Context, value Person) (Person, error)
	CreateOrganization(ctx context.Context, id int64) (Organization, error)
	// CheckIn merges the CHECKED_IN edge. The boolean reports whether both
	// endpoints matched; a false result means person or organization missing.
	CheckIn(ctx context.Context, userID, orgID int64) (bool, error)
	// ActiveUsersByRole groups checked-in people by role, optionally scoped
	// to a single organization.
	ActiveUsersByRole(ctx context.Context, orgID *int64) ([]RoleGroup, error)
	// CheckoutNonAdmin deletes every non-admin CHECKED_IN edge into the
	// organization and reports how many edges were removed.
	CheckoutNonAdmin(ctx context.Context, orgID int64) (int, error)
	// CheckoutAdmin deletes the admin's CHECKED_IN edge and reports how many
	// edges were removed (zero when the admin was not checked in).
	CheckoutAdmin(ctx context.Context, orgID int64) (int, error)
	// SetHours stores the opening/closing pair on a matched organization.
	// A missing organization is a silent no-op.
	SetHours(ctx context.Context, orgID int64, opening, closing string) error
	// OrganizationHours returns ErrNotFound when the organization is absent.
	// Unset times come back as empty strings.
	OrganizationHours(ctx context.Context, orgID int64) (OperatingHours, error)
}

// SocialRepository covers the social graph: users, posts, FOLLOW and LIKE.
type SocialRepository interface {
	CreateUser(ctx context.Context, value SocialUser) (SocialUser, error)
	ListUsers(ctx context.Context) ([]SocialUser, error)
	GetUser(ctx context.Context, id string) (SocialUser, error)
	UpdateUser(ctx context.Context, id string, update SocialUserUpdate) (SocialUser, error)
	DeleteUser(ctx context.Context, id string) error
	CreatePost(ctx context.Context, value Post) (Post, error)
	// Follow and Like create edges unconditionally; a missing endpoint makes
	// the store match zero rows and no edge appears, without error.
	Follow(ctx context.Context, followerID, followeeID string) error
	Like(ctx context.Context, userID, postID string) error
	Followers(ctx context.Context, userID string) ([]SocialUser, error)
	Following(ctx context.Context, userID string) ([]SocialUser, error)
	Likes(ctx context.Context, postID string) ([]SocialUser, error)
}

// RelationshipRepository covers generic caller-typed edges.
type RelationshipRepository interface {
	// Create returns the store's relationship id, or ErrNotFound when either
	// endpoint is missing.
	Create(ctx context.Context, value Relationship) (string, error)
	// Delete reports how many edges were removed.
	Delete(ctx context.Context, value Relationship) (int, error)
}

// DirectoryRepository covers the relational directory variant.
type DirectoryRepository interface {
	CreateUser(ctx context.Context, value DirectoryUser) (DirectoryUser, error)
	ListUsers(ctx context.Context, skip, limit int) ([]DirectoryUser, error)
	GetUser(ctx context.Context, id uint) (DirectoryUser, error)
	UpdateUser(ctx context.Context, id uint, update DirectoryUserUpdate) (DirectoryUser, error)
	DeleteUser(ctx context.Context, id uint) error
}
