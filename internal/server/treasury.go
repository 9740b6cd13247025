package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	"github.com/shopspring/decimal"
)

type treasuryAllocation struct {
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
}

type createTreasuryRequest struct {
	Date        string               `json:"date"`
	Type        string               `json:"type"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Allocations []treasuryAllocation `json:"allocations"`
	CreatedBy   string               `json:"created_by"`
}

type updateTreasuryRequest struct {
	Date        string               `json:"date"`
	Type        string               `json:"type"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Allocations []treasuryAllocation `json:"allocations"`
}

func toAllocations(in []treasuryAllocation) []treasurydomain.Allocation {
	if len(in) == 0 {
		return nil
	}
	out := make([]treasurydomain.Allocation, 0, len(in))
	for _, alloc := range in {
		out = append(out, treasurydomain.Allocation{
			Source: treasurydomain.FundSource(strings.TrimSpace(alloc.Source)),
			Amount: alloc.Amount,
		})
	}
	return out
}

func (s *Server) CreateTreasuryEntry(c *gin.Context) {
	var req createTreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.treasurySvc.Create(c.Request.Context(), treasurydomain.CreateRequest{
		Date:        strings.TrimSpace(req.Date),
		Type:        treasurydomain.TransactionType(strings.TrimSpace(req.Type)),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Allocations: toAllocations(req.Allocations),
		CreatedBy:   strings.TrimSpace(req.CreatedBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTreasuryEntries(c *gin.Context) {
	resp, err := s.treasurySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTreasuryEntry(c *gin.Context) {
	var req updateTreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.treasurySvc.Update(c.Request.Context(), treasurydomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Date:        strings.TrimSpace(req.Date),
		Type:        treasurydomain.TransactionType(strings.TrimSpace(req.Type)),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Allocations: toAllocations(req.Allocations),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTreasuryEntry(c *gin.Context) {
	if err := s.treasurySvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetTreasuryBalances(c *gin.Context) {
	resp, err := s.treasurySvc.Balances(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTreasuryHistory(c *gin.Context) {
	resp, err := s.treasurySvc.History(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetGlobalFinancials(c *gin.Context) {
	var query struct {
		StartDate string `form:"start_date"`
		EndDate   string `form:"end_date"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.treasurySvc.GlobalFinancials(
		c.Request.Context(),
		strings.TrimSpace(query.StartDate),
		strings.TrimSpace(query.EndDate),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isTreasuryValidationError(err error) bool {
	switch err {
	case treasurydomain.ErrInvalidLodge,
		treasurydomain.ErrInvalidID,
		treasurydomain.ErrInvalidDate,
		treasurydomain.ErrInvalidType,
		treasurydomain.ErrInvalidAmount,
		treasurydomain.ErrInvalidAllocation,
		treasurydomain.ErrAllocationMismatch:
		return true
	default:
		return false
	}
}
