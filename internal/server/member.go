package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
)

type createMemberRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	JoinDate        string `json:"join_date"`
	MasonicJoinDate string `json:"masonic_join_date"`
	RejoinDate      string `json:"rejoin_date"`
	LodgeRole       string `json:"lodge_role"`
}

type updateMemberRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	JoinDate        *string `json:"join_date"`
	MasonicJoinDate *string `json:"masonic_join_date"`
	RejoinDate      *string `json:"rejoin_date"`
	LodgeRole       *string `json:"lodge_role"`
}

func (s *Server) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.memberSvc.Create(c.Request.Context(), memberdomain.CreateRequest{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		JoinDate:        strings.TrimSpace(req.JoinDate),
		MasonicJoinDate: strings.TrimSpace(req.MasonicJoinDate),
		RejoinDate:      strings.TrimSpace(req.RejoinDate),
		LodgeRole:       strings.TrimSpace(req.LodgeRole),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMembers(c *gin.Context) {
	resp, err := s.memberSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMemberByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.memberSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.memberSvc.Update(c.Request.Context(), memberdomain.UpdateRequest{
		ID:              strings.TrimSpace(c.Param("id")),
		Name:            req.Name,
		Email:           req.Email,
		JoinDate:        req.JoinDate,
		MasonicJoinDate: req.MasonicJoinDate,
		RejoinDate:      req.RejoinDate,
		LodgeRole:       req.LodgeRole,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ActivateMember(c *gin.Context) {
	s.setMemberActive(c, true)
}

func (s *Server) DeactivateMember(c *gin.Context) {
	s.setMemberActive(c, false)
}

func (s *Server) setMemberActive(c *gin.Context, active bool) {
	resp, err := s.memberSvc.SetActive(c.Request.Context(), strings.TrimSpace(c.Param("id")), active)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isMemberValidationError(err error) bool {
	switch err {
	case memberdomain.ErrInvalidLodge,
		memberdomain.ErrInvalidID,
		memberdomain.ErrInvalidName,
		memberdomain.ErrInvalidDate:
		return true
	default:
		return false
	}
}
