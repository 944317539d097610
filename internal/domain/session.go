package domain

// Session is the server-side state behind a session cookie.
// The account slot and the admin flag are independent: signing in as a player
// never grants admin rights and the admin identity has no account record.
type Session struct {
	AccountID int64 `json:"account_id,omitempty"`
	Admin     bool  `json:"admin,omitempty"`
}

// Account returns the signed-in account id, if any.
func (s Session) Account() (int64, bool) {
	return s.AccountID, s.AccountID > 0
}

// Empty reports whether the session carries no identity at all.
func (s Session) Empty() bool {
	return s.AccountID == 0 && !s.Admin
}
