package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	lodgedomain "github.com/lodgeworks/tesoro/internal/organization/domain"
)

type createLodgeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateLodgeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) CreateLodge(c *gin.Context) {
	var req createLodgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.lodgeSvc.Create(c.Request.Context(), lodgedomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLodges(c *gin.Context) {
	resp, err := s.lodgeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLodgeByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.lodgeSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateLodge(c *gin.Context) {
	var req updateLodgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.lodgeSvc.Update(c.Request.Context(), lodgedomain.UpdateRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isLodgeValidationError(err error) bool {
	switch err {
	case lodgedomain.ErrInvalidName,
		lodgedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
