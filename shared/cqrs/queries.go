package cqrs

// ---------- User queries ----------

// GetUserQuery fetches the caller's own user view.
type GetUserQuery struct {
	UserID string
}

// DashboardQuery fetches the caller's identity together with their account.
type DashboardQuery struct {
	UserID string
}

// ---------- Account queries ----------

// GetBalanceQuery fetches the balance of the account owned by UserID.
type GetBalanceQuery struct {
	UserID string
}
