package middleware

// AdminGate authorises admin-only actions against one configured account.
type AdminGate struct {
	AdminID int64
}

// Allow reports whether userID may run admin actions.
// A zero AdminID disables every admin action.
func (g AdminGate) Allow(userID int64) bool {
	return g.AdminID != 0 && userID == g.AdminID
}
