package filedock_test

import (
	"strings"
	"testing"

	"github.com/sagarc03/filedock"
	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  string
	}{
		{"valid", "alice", ""},
		{"valid with digits", "alice42", ""},
		{"empty", "", "username cannot be empty"},
		{"too short", "ab", "between 3 and 20"},
		{"too long", strings.Repeat("a", 21), "between 3 and 20"},
		{"contains space", "ali ce", "cannot contain spaces"},
		{"special characters", "alice!", "special characters"},
		{"starts with digit", "1alice", "must start with a letter"},
		{"underscore", "ali_ce", "special characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := filedock.ValidateUsername(tt.username)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, filedock.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr string
	}{
		{"valid", "alice@example.com", ""},
		{"valid with plus", "alice+tag@example.com", ""},
		{"empty", "", "email cannot be empty"},
		{"no at", "aliceexample.com", "invalid email format"},
		{"two ats", "alice@@example.com", "invalid email format"},
		{"no domain dot", "alice@example", "invalid email format"},
		{"starts with digit", "1alice@example.com", "invalid email format"},
		{"whitespace", "ali ce@example.com", "invalid email format"},
		{"too long", "a" + strings.Repeat("b", 250) + "@example.com", "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := filedock.ValidateEmail(tt.email)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, filedock.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
