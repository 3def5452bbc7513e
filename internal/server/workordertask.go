package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	workordertaskdomain "github.com/fleetline/taller/internal/workordertask/domain"
)

func (s *Server) CreateTask(c *gin.Context) {
	var req workordertaskdomain.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.taskSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTasksByOrder(c *gin.Context) {
	workOrderID, err := pathID(c, "work_order_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.taskSvc.ListByOrder(c.Request.Context(), workOrderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTask(c *gin.Context) {
	taskID, err := pathID(c, "task_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req workordertaskdomain.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.taskSvc.Update(c.Request.Context(), taskID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTask(c *gin.Context) {
	taskID, err := pathID(c, "task_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.taskSvc.Delete(c.Request.Context(), taskID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) TaskEarnings(c *gin.Context) {
	var req workordertaskdomain.EarningsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.taskSvc.Earnings(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkTasksPaid(c *gin.Context) {
	var req workordertaskdomain.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.taskSvc.MarkPaid(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
