package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transaction is a coin ledger entry.
type Transaction struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UserName    string `json:"user_name,omitempty"`
	UserEmail   string `json:"user_email,omitempty"`
}

var transactionLabels = map[string]string{
	"purchase_deep_dive":      "Deep Dive purchase",
	"purchase_micro_timing":   "Micro Timing purchase",
	"purchase_celestial_bond": "Celestial Bond purchase",
	"celestial_bond":          "Celestial Bond",
	"purchase_ai_wallpaper":   "AI Wallpaper purchase",
	"ai_wallpaper":            "AI Wallpaper",
	"subscription":            "Premium subscription",
	"topup":                   "Coin top-up",
	"admin_topup":             "Admin top-up",
	"spend":                   "Coin spend",
	"reward":                  "Reward",
}

// Label returns a readable name for the transaction type. Unknown types fall back to
// their words in title case.
func (t Transaction) Label() string {
	if label, ok := transactionLabels[t.Type]; ok {
		return label
	}
	return Humanize(t.Type)
}

// IsCredit reports whether the entry added coins.
func (t Transaction) IsCredit() bool {
	return t.Amount >= 0
}

// TransactionKind classifies an entry for the coin management history.
type TransactionKind string

const (
	KindAdminAdd    TransactionKind = "admin_add"
	KindAdminDeduct TransactionKind = "admin_deduct"
	KindPremium     TransactionKind = "premium"
	KindSpend       TransactionKind = "spend"
	KindTopUp       TransactionKind = "topup"
)

// Kind buckets the entry the way the coin history groups it.
func (t Transaction) Kind() TransactionKind {
	switch {
	case strings.Contains(t.Type, "admin_adjust_add"):
		return KindAdminAdd
	case strings.Contains(t.Type, "admin_adjust_deduct"):
		return KindAdminDeduct
	case strings.Contains(t.Type, "premium"):
		return KindPremium
	case t.Amount < 0:
		return KindSpend
	default:
		return KindTopUp
	}
}

// IsAdminAction reports whether an admin made the adjustment.
func (t Transaction) IsAdminAction() bool {
	return strings.Contains(t.Type, "admin") || strings.Contains(strings.ToLower(t.Description), "admin")
}

// AdminTransactions keeps only admin adjustments.
func AdminTransactions(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsAdminAction() {
			out = append(out, tx)
		}
	}
	return out
}

// CoinAction is the direction of a manual balance adjustment.
type CoinAction string

const (
	CoinActionAdd    CoinAction = "add"
	CoinActionDeduct CoinAction = "deduct"
)

// Valid reports whether the action is known.
func (a CoinAction) Valid() bool {
	return a == CoinActionAdd || a == CoinActionDeduct
}

// CoinAdjustment is the payload for /coins/add and /coins/deduct.
type CoinAdjustment struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// CoinAdjustmentResult carries the balance after an adjustment.
type CoinAdjustmentResult struct {
	NewBalance int64 `json:"new_balance"`
}

// Humanize turns snake_case identifiers such as roles and types into title-cased words.
func Humanize(s string) string {
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
