package strength

import "github.com/nbutton23/zxcvbn-go"

// MaxScore is the top of the zxcvbn score range.
const MaxScore = 4

// Score estimates the crack-resistance of password on the 0–4 scale.
func Score(password string) int {
	return zxcvbn.PasswordStrength(password, nil).Score
}

// Acceptable reports whether password scores at or above minimum. A minimum
// of 0 accepts everything; minima above MaxScore reject everything.
func Acceptable(password string, minimum int) bool {
	return Score(password) >= minimum
}
