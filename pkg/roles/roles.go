package roles

// Role is the permission group of a dashboard account.
type Role string

const (
	// Admin manages accounts and may perform every operation.
	Admin Role = "admin"
	// Scheduler imports work orders and shortages, sets stage dates,
	// readiness flags and archives finished models.
	Scheduler Role = "scheduler"
	// Purchaser answers shortages with reply dates and remarks.
	Purchaser Role = "purchaser"
	// Viewer has read-only access.
	Viewer Role = "viewer"
)

func (r Role) IsValid() bool {
	switch r {
	case Admin, Scheduler, Purchaser, Viewer:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// OneOf reports whether the role is in the allowed set. Admin passes every
// check.
func (r Role) OneOf(allowed ...Role) bool {
	if r == Admin {
		return true
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
