package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
)

func (s *Server) CreateWorkArea(c *gin.Context) {
	var req mechanicdomain.CreateWorkAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.mechanicSvc.CreateArea(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWorkAreas(c *gin.Context) {
	resp, err := s.mechanicSvc.ListAreas(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AssignMechanic(c *gin.Context) {
	var req mechanicdomain.AssignMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.mechanicSvc.Assign(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMechanicsByOrder(c *gin.Context) {
	workOrderID, err := pathID(c, "work_order_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.mechanicSvc.ListByOrder(c.Request.Context(), workOrderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveMechanic(c *gin.Context) {
	id, err := pathID(c, "mechanic_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.mechanicSvc.Remove(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": true}})
}
