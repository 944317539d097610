package domain

// Outcome is the result of one draw.
type Outcome struct {
	Win   bool
	Prize int64
}

// PlayResult is what a completed play reports back. Prize is 0 on a loss.
type PlayResult struct {
	Win     bool
	Prize   int64
	Cost    int64
	Balance int64
}
