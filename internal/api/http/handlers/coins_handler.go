package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/domain"
)

// CoinSearchLimit bounds the user search on the coin management page.
const CoinSearchLimit = 20

// CoinsHandler serves coin management.
type CoinsHandler struct{}

// NewCoinsHandler constructs handler.
func NewCoinsHandler() *CoinsHandler {
	return &CoinsHandler{}
}

// View handles GET /coins?q=: user search results and the admin adjustment history.
func (h *CoinsHandler) View(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	query := strings.TrimSpace(c.Query("q"))

	var (
		users []domain.User
		txs   []domain.Transaction
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	if query != "" {
		g.Go(func() (err error) {
			users, err = api.SearchUsers(ctx, query, CoinSearchLimit)
			return err
		})
	}
	g.Go(func() (err error) {
		txs, err = api.ListTransactions(ctx, UserPageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return page(c, fiber.Map{
		"query":   query,
		"users":   nonNil(users),
		"history": transactionViews(domain.AdminTransactions(txs)),
	})
}

// Adjust handles POST /coins/adjust.
func (h *CoinsHandler) Adjust(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}

	var req dto.CoinAdjustRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	action, adj, err := req.Validate()
	if err != nil {
		return err
	}

	res, err := api.AdjustCoins(c.UserContext(), action, adj)
	if err != nil {
		return err
	}

	verb := "Added"
	if action == domain.CoinActionDeduct {
		verb = "Deducted"
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"success":     true,
			"user_id":     adj.UserID,
			"new_balance": res.NewBalance,
			"message":     fmt.Sprintf("%s %d coins. New balance: %d", verb, adj.Amount, res.NewBalance),
		},
	})
}
