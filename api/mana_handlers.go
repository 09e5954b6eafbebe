package api

import (
	"net/http"
	"strconv"

	"akashic/domain/entities"

	"github.com/gin-gonic/gin"
)

type transactionResponse struct {
	ID            int64  `json:"id"`
	Amount        int64  `json:"amount"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	BalanceBefore int64  `json:"balance_before"`
	BalanceAfter  int64  `json:"balance_after"`
	CreatedAt     string `json:"created_at"`
}

type purchaseRequest struct {
	PackageID  int64  `json:"packageId" binding:"required"`
	PaymentRef string `json:"paymentRef" binding:"required"`
}

func (s *Server) handleBalance(c *gin.Context) {
	user := currentUser(c)

	balance, err := s.ledger.GetBalance(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

func (s *Server) handleTransactions(c *gin.Context) {
	user := currentUser(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondValidationError(c, entities.NewValidationError("invalid limit"))
			return
		}
		limit = parsed
	}

	transactions, err := s.ledger.ListTransactions(c.Request.Context(), user.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, transactionResponse{
			ID:            tx.ID,
			Amount:        tx.Amount,
			Type:          tx.TransactionType.String(),
			Description:   tx.Description,
			BalanceBefore: tx.BalanceBefore,
			BalanceAfter:  tx.BalanceAfter,
			CreatedAt:     tx.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"transactions": resp})
}

func (s *Server) handleListPackages(c *gin.Context) {
	packages, err := s.ledger.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type packageResponse struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		ManaAmount int64  `json:"mana_amount"`
		PriceCents int64  `json:"price_cents"`
	}

	resp := make([]packageResponse, 0, len(packages))
	for _, pkg := range packages {
		resp = append(resp, packageResponse{
			ID:         pkg.ID,
			Name:       pkg.Name,
			ManaAmount: pkg.ManaAmount,
			PriceCents: pkg.PriceCents,
		})
	}
	c.JSON(http.StatusOK, gin.H{"packages": resp})
}

func (s *Server) handlePurchase(c *gin.Context) {
	user := currentUser(c)

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	balance, err := s.ledger.PurchasePackage(c.Request.Context(), user.ID, req.PackageID, req.PaymentRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
