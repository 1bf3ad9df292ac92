package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// UserPageSize is how many users and transactions list pages load.
const UserPageSize = 50

// TransactionView is a ledger entry with its display label.
type TransactionView struct {
	domain.Transaction
	Label    string                 `json:"label"`
	IsCredit bool                   `json:"is_credit"`
	Kind     domain.TransactionKind `json:"kind"`
}

func transactionViews(txs []domain.Transaction) []TransactionView {
	out := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionView{Transaction: tx, Label: tx.Label(), IsCredit: tx.IsCredit(), Kind: tx.Kind()})
	}
	return out
}

// UsersHandler serves the user and transaction lists.
type UsersHandler struct{}

// NewUsersHandler constructs handler.
func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// List handles GET /users?search=. Filtering happens on the loaded page.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	users, err := api.ListUsers(c.UserContext(), UserPageSize)
	if err != nil {
		return err
	}
	search := c.Query("search")
	return page(c, fiber.Map{
		"search": search,
		"total":  len(users),
		"users":  nonNil(domain.FilterUsers(users, search)),
	})
}

// Transactions handles GET /transactions.
func (h *UsersHandler) Transactions(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	txs, err := api.ListTransactions(c.UserContext(), UserPageSize)
	if err != nil {
		return err
	}
	return page(c, fiber.Map{"transactions": transactionViews(txs)})
}
