package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
	clientdomain "github.com/fleetline/taller/internal/client/domain"
	expensedomain "github.com/fleetline/taller/internal/expense/domain"
	invoicedomain "github.com/fleetline/taller/internal/invoice/domain"
	mechanicdomain "github.com/fleetline/taller/internal/mechanic/domain"
	partdomain "github.com/fleetline/taller/internal/part/domain"
	paymentdomain "github.com/fleetline/taller/internal/payment/domain"
	"github.com/fleetline/taller/internal/refcheck"
	truckdomain "github.com/fleetline/taller/internal/truck/domain"
	userdomain "github.com/fleetline/taller/internal/user/domain"
	workorderdomain "github.com/fleetline/taller/internal/workorder/domain"
	workorderpartdomain "github.com/fleetline/taller/internal/workorderpart/domain"
	workordertaskdomain "github.com/fleetline/taller/internal/workordertask/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidID      = errors.New("invalid_id")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFoundMessage(err),
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	var refErr *refcheck.NotFoundError
	if errors.As(err, &refErr) {
		return true
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, truckdomain.ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, partdomain.ErrNotFound),
		errors.Is(err, expensedomain.ErrNotFound),
		errors.Is(err, workorderdomain.ErrNotFound),
		errors.Is(err, mechanicdomain.ErrNotFound),
		errors.Is(err, workordertaskdomain.ErrNotFound),
		errors.Is(err, workorderpartdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrCheckNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	var refErr *refcheck.NotFoundError
	if errors.As(err, &refErr) {
		return refErr.Error()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "not_found"
	}
	return err.Error()
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, truckdomain.ErrDuplicatePlate),
		errors.Is(err, userdomain.ErrDuplicateEmail),
		errors.Is(err, mechanicdomain.ErrDuplicateArea),
		errors.Is(err, expensedomain.ErrDuplicateType),
		errors.Is(err, invoicedomain.ErrAlreadyInvoiced),
		errors.Is(err, workorderdomain.ErrOrderInvoiced),
		errors.Is(err, paymentdomain.ErrCheckExchanged):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, clientdomain.ErrInvalidType),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, truckdomain.ErrInvalidPlate),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrWeakPassword),
		errors.Is(err, partdomain.ErrInvalidName),
		errors.Is(err, partdomain.ErrInvalidPrice),
		errors.Is(err, expensedomain.ErrInvalidAmount),
		errors.Is(err, workorderdomain.ErrReviewerNotAssigned),
		errors.Is(err, workordertaskdomain.ErrInvalidPrice),
		errors.Is(err, workordertaskdomain.ErrNoTaskIDs),
		errors.Is(err, workorderpartdomain.ErrInvalidQuantity),
		errors.Is(err, workorderpartdomain.ErrInvalidPrice),
		errors.Is(err, invoicedomain.ErrInvalidTotal),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidCheckType):
		return true
	default:
		return false
	}
}

// classifyErrorForLog feeds the request logger a coarse type plus the
// sentinel code without leaking internals.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", "internal_error"
	case status == http.StatusNotFound:
		return "not_found", strings.TrimSpace(payload.Message)
	default:
		return payload.Type, strings.TrimSpace(payload.Message)
	}
}
