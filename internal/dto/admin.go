package dto

// UpdateLossProbRequest is the body for POST /admin/dashboard. An absent loss_prob means "0.8".
type UpdateLossProbRequest struct {
	LossProb *string `form:"loss_prob" json:"loss_prob"`
}

// DashboardResponse is the admin view. LossProb is empty when the setting is unset.
// Message is only present after a successful update.
type DashboardResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	LossProb string            `json:"loss_prob"`
	Message  string            `json:"message,omitempty"`
}
