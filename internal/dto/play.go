package dto

// PlayResponse describes a finished play and the balance after it.
type PlayResponse struct {
	Win     bool   `json:"win"`
	Prize   int64  `json:"prize"`
	Cost    int64  `json:"cost"`
	Balance int64  `json:"balance"`
	Message string `json:"message"`
}

// PlayStatusResponse is returned by GET /play.
type PlayStatusResponse struct {
	Account AccountResponse `json:"account"`
	Cost    int64           `json:"cost"`
}
