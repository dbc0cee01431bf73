package domain

// Person is a presence-domain graph node. IDs are caller supplied; the store
// does not enforce uniqueness, so two creates with the same id yield two nodes.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PersonSummary is the projection returned inside role groupings.
type PersonSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoleGroup collects the checked-in people sharing one role attribute.
type RoleGroup struct {
	Role  string          `json:"role"`
	Users []PersonSummary `json:"users"`
}

// Organization is a presence-domain graph node. Operating hours stay empty
// until explicitly set; empty hours block every time-gated operation.
type Organization struct {
	ID          int64  `json:"id"`
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
}

// OperatingHours is the stored opening/closing pair for one organization.
// Either field may be empty when never set.
type OperatingHours struct {
	Opening string
	Closing string
}

// CheckInStatus is the per-user outcome of a batch check-in request.
type CheckInStatus struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

// SocialUser is a social-graph node. The id is caller supplied or generated
// at creation time.
type SocialUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Age    int64  `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// SocialUserUpdate carries the fields of a partial user update. Nil fields
// are left untouched.
type SocialUserUpdate struct {
	Name   *string
	Email  *string
	Age    *int64
	Gender *string
}

// Post is a social-graph node with opaque string fields.
type Post struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Relationship describes a generic caller-typed edge between two nodes
// addressed by their id property. IDs may be strings or numbers.
type Relationship struct {
	SourceID any
	TargetID any
	Type     string
}

// DirectoryUser is a row in the relational directory variant.
type DirectoryUser struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// DirectoryUserUpdate carries the fields of a partial directory update.
type DirectoryUserUpdate struct {
	Name   *string
	Email  *string
	Age    *int
	Gender *string
}
