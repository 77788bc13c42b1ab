package domain

// Role enumerates caller roles on the command surface. Visibility of the
// operational dashboard is gated on the moderator role.
type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleModerator Role = "MODERATOR"
)
