package domain

import "strings"

// User is an end-user of the mobile app as returned by the admin API.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	CoinsBalance int64  `json:"coins_balance"`
	IsPremium    bool   `json:"is_premium"`
	CreatedAt    string `json:"created_at"`
}

// FilterUsers keeps users whose email or display name contains the query,
// case-insensitively. An empty query keeps everything.
func FilterUsers(users []User, query string) []User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.DisplayName), q) {
			out = append(out, u)
		}
	}
	return out
}

// WithBalance returns a copy of users where the matching user carries the new balance.
func WithBalance(users []User, userID string, balance int64) []User {
	out := make([]User, len(users))
	copy(out, users)
	for i := range out {
		if out[i].ID == userID {
			out[i].CoinsBalance = balance
		}
	}
	return out
}
