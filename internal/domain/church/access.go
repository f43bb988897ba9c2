package church

// Access is the caller's standing in one church, resolved once per request.
type Access struct {
	ChurchID string
	UserID   string
	Role     string
	IsOwner  bool
}

// IsAdmin is true for the church owner and for members holding the admin
// role. The owner needs no membership row.
func (a Access) IsAdmin() bool {
	return a.IsOwner || a.Role == RoleAdmin
}

func (a Access) IsMember() bool {
	return a.IsOwner || a.Role != ""
}

func (a Access) CanTakeAttendance() bool {
	return a.IsAdmin() || a.Role == RoleTeacher
}

func (a Access) EffectiveRole() string {
	if a.IsOwner {
		return RoleAdmin
	}
	return a.Role
}

// RoleLabel is the human readable label stamped on comments.
func (a Access) RoleLabel() string {
	return RoleLabel(a.EffectiveRole())
}

func RoleLabel(role string) string {
	switch role {
	case RoleAdmin:
		return "Admin"
	case RoleTeacher:
		return "Teacher"
	case RoleMember:
		return "Member"
	default:
		return ""
	}
}
