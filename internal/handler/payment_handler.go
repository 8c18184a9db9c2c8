package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"beingiitian/internal/auth"
	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/service"
)

// PaymentHandler handles payment orders and enrollments.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrderRequest opens a payment order for a course.
type CreateOrderRequest struct {
	CourseID uuid.UUID       `json:"course_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
}

// VerifyPaymentRequest confirms a payment with the gateway identifiers.
type VerifyPaymentRequest struct {
	PaymentID        uuid.UUID `json:"payment_id" validate:"required"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	GatewaySignature string    `json:"gateway_signature"`
}

// CreateOrder godoc
// @Summary Create a payment order
// @Description Opens a PENDING payment for a course. Gateway integration is pending.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order data"
// @Success 201 {object} model.Payment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/orders [post]
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "not authenticated",
			Code:  "UNAUTHENTICATED",
		})
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.CreateOrder(c.Request().Context(), claims.UserID, req.CourseID, req.Amount)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "payment order created",
		"payment": payment,
	})
}

// Verify godoc
// @Summary Verify a payment
// @Description Marks a payment completed and enrolls the student in the purchased course.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body VerifyPaymentRequest true "Gateway identifiers"
// @Success 200 {object} model.Payment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	var req VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentService.Verify(c.Request().Context(), service.VerifyPaymentInput{
		PaymentID:        req.PaymentID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		GatewaySignature: req.GatewaySignature,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "payment verified successfully",
		"payment": payment,
	})
}

// ListEnrollments godoc
// @Summary List the caller's enrollments
// @Tags payments
// @Produce json
// @Success 200 {object} map[string][]model.Enrollment
// @Failure 401 {object} errors.ErrorResponse
// @Router /enrollments [get]
func (h *PaymentHandler) ListEnrollments(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "not authenticated",
			Code:  "UNAUTHENTICATED",
		})
	}

	enrollments, err := h.paymentService.ListEnrollments(c.Request().Context(), claims.UserID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"enrollments": enrollments})
}
