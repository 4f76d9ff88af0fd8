package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrengthLevels(t *testing.T) {
	tests := []struct {
		name     string
		password string
		score    int
		level    string
		strong   bool
	}{
		{"empty", "", 0, "weak", false},
		{"short lowercase", "abc", 1, "weak", false},
		{"lowercase with digit", "abc123", 2, "weak", false},
		{"three criteria", "abcdefg1", 3, "medium", true},
		{"four criteria", "Abcdefg1", 4, "medium", true},
		{"all five", "Abcdef1!", 5, "strong", true},
		{"long but monotone", "aaaaaaaaaa", 2, "weak", false},
		{"symbols count", "p@ss", 2, "weak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckPasswordStrength(tt.password)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.level, res.Level)
			assert.Equal(t, tt.strong, res.StrongEnough())
		})
	}
}

func TestPasswordStrengthCriteriaFlags(t *testing.T) {
	res := CheckPasswordStrength("Abcdef1!")
	assert.True(t, res.Length)
	assert.True(t, res.Lower)
	assert.True(t, res.Upper)
	assert.True(t, res.Digit)
	assert.True(t, res.Symbol)
}

func TestProviderCodeMessages(t *testing.T) {
	tests := []struct {
		code    string
		kind    FailureKind
		message string
	}{
		{"auth/user-not-found", FailureCredential, "No user found with this email."},
		{"auth/wrong-password", FailureCredential, "Incorrect password."},
		{"auth/email-already-in-use", FailureCredential, "This email is already registered."},
		{"auth/invalid-email", FailureCredential, "Invalid email address."},
		{"auth/weak-password", FailureCredential, "Password is too weak (min 6 characters)."},
		{"auth/popup-closed-by-user", FailureCancelled, "Sign-in was cancelled."},
		{"auth/something-new", FailureCredential, "An error occurred. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pe := classifyProviderCode(tt.code)
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, tt.message, pe.Message)
		})
	}
}
