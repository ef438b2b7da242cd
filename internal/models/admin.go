package models

// AdminUserFilter holds the optional filters for the admin user listing.
// Zero values mean "not set".
type AdminUserFilter struct {
	Name       string // substring match on name
	Email      string // substring match on email
	IsVerified *bool  // exact match when set
	StartDate  string // created_at lower bound, inclusive
	EndDate    string // created_at upper bound, inclusive
	Page       int    // 1-based page number
	Limit      int    // page size
}
