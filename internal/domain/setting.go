package domain

const (
	// KeyLossProb holds the probability, in [0,1], that a play loses.
	KeyLossProb = "loss_prob"
	// DefaultLossProb applies when KeyLossProb is unset.
	DefaultLossProb = 0.8
)

// Setting is one tunable key/value pair.
type Setting struct {
	Key   string
	Value string
}

// GameConfig is the snapshot of settings a single play runs with.
type GameConfig struct {
	LossProbability float64
}
