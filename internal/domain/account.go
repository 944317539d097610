package domain

// DefaultCredits is the balance a new account starts with.
const DefaultCredits int64 = 100

// Account is a registered player. Password is stored and compared as plaintext.
type Account struct {
	ID       int64
	Email    string
	Password string
	Credits  int64
}
