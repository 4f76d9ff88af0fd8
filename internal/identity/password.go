package identity

import "unicode"

// StrengthResult is the outcome of the password strength check.
type StrengthResult struct {
	Score  int    `json:"score"`
	Level  string `json:"level"`
	Length bool   `json:"length"`
	Lower  bool   `json:"lowercase"`
	Upper  bool   `json:"uppercase"`
	Digit  bool   `json:"digit"`
	Symbol bool   `json:"symbol"`
}

// minStrengthScore is the registration floor: at least 3 of the 5 criteria.
const minStrengthScore = 3

// CheckPasswordStrength scores a password against five criteria: length>=8,
// lowercase, uppercase, digit, symbol.
func CheckPasswordStrength(password string) StrengthResult {
	res := StrengthResult{Length: len(password) >= 8}

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			res.Lower = true
		case unicode.IsUpper(r):
			res.Upper = true
		case unicode.IsDigit(r):
			res.Digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			res.Symbol = true
		}
	}

	for _, ok := range []bool{res.Length, res.Lower, res.Upper, res.Digit, res.Symbol} {
		if ok {
			res.Score++
		}
	}

	switch {
	case res.Score < 3:
		res.Level = "weak"
	case res.Score < 5:
		res.Level = "medium"
	default:
		res.Level = "strong"
	}
	return res
}

// StrongEnough reports whether the password passes the registration floor
func (r StrengthResult) StrongEnough() bool {
	return r.Score >= minStrengthScore
}
