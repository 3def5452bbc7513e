package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	workorderpartdomain "github.com/fleetline/taller/internal/workorderpart/domain"
)

func (s *Server) CreateOrderPart(c *gin.Context) {
	var req workorderpartdomain.CreateWorkOrderPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderParts.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrderParts(c *gin.Context) {
	workOrderID, err := pathID(c, "work_order_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.orderParts.ListByOrder(c.Request.Context(), workOrderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrderPart(c *gin.Context) {
	partID, err := pathID(c, "part_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req workorderpartdomain.UpdateWorkOrderPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderParts.Update(c.Request.Context(), partID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrderPart(c *gin.Context) {
	partID, err := pathID(c, "part_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.orderParts.Delete(c.Request.Context(), partID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
