// Package http exposes the payment workflow over JSON/HTTP with echo. Handlers
// translate requests into commands and queries, run them, and map the outcome
// to a status code and the {success, message, order, session} envelope.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

type (
	createPaymentHandler interface {
		Handle(ctx context.Context, command commands.CreatePaymentCommand) (*order.Order, error)
	}
	payWithUPIHandler interface {
		Handle(ctx context.Context, command commands.PayWithUPICommand) (*order.Order, error)
	}
	startPaymentSessionHandler interface {
		Handle(ctx context.Context, command commands.StartPaymentSessionCommand) (commands.StartPaymentSessionResult, error)
	}
	requestUPICollectHandler interface {
		Handle(ctx context.Context, command commands.RequestUPICollectCommand) (*session.Session, error)
	}
	confirmPaymentHandler interface {
		Handle(ctx context.Context, command commands.ConfirmPaymentCommand) (commands.ConfirmPaymentResult, error)
	}
	simulatePaymentHandler interface {
		Handle(ctx context.Context, command commands.SimulatePaymentCommand) (commands.SimulatePaymentResult, error)
	}
	updateOrderStatusHandler interface {
		Handle(ctx context.Context, command commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	checkPaymentStatusHandler interface {
		Handle(ctx context.Context, query queries.CheckPaymentStatusQuery) (queries.CheckPaymentStatusQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreatePayment       createPaymentHandler
	PayWithUPI          payWithUPIHandler
	StartPaymentSession startPaymentSessionHandler
	RequestUPICollect   requestUPICollectHandler
	ConfirmPayment      confirmPaymentHandler
	SimulatePayment     simulatePaymentHandler
	UpdateOrderStatus   updateOrderStatusHandler
	CheckPaymentStatus  checkPaymentStatusHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers    Handlers
	metrics     *Metrics
	logger      *slog.Logger
	development bool
}

// NewServer creates the HTTP server. In development mode internal error details
// are included in responses.
func NewServer(handlers Handlers, metrics *Metrics, logger *slog.Logger, development bool) *Server {
	return &Server{
		handlers:    handlers,
		metrics:     metrics,
		logger:      logger.With("component", "http"),
		development: development,
	}
}

// CreatePayment handles POST /api/v1/payments.
func (s *Server) CreatePayment(c echo.Context) error {
	const operation = "create_payment"

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return s.invalidBody(c, operation, err)
	}
	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(c, operation, err)
	}

	cmd, err := commands.NewCreatePaymentCommand(orderID, actorFrom(c), req.Amount, req.PaymentMethod, req.UPIID, req.UPIApp)
	if err != nil {
		return s.fail(c, operation, err)
	}

	o, err := s.handlers.CreatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	message := "Payment successful"
	if cmd.Method() == order.MethodCOD {
		message = "Order confirmed with cash on delivery"
	}
	return s.respond(c, operation, http.StatusOK, envelope{Success: true, Message: message, Order: toOrderResponse(o)})
}

// PayWithUPI handles POST /api/v1/payments/upi.
func (s *Server) PayWithUPI(c echo.Context) error {
	const operation = "pay_with_upi"

	var req payWithUPIRequest
	if err := c.Bind(&req); err != nil {
		return s.invalidBody(c, operation, err)
	}
	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(c, operation, err)
	}

	cmd, err := commands.NewPayWithUPICommand(orderID, actorFrom(c), req.Amount, req.UPIID, req.UPIApp)
	if err != nil {
		return s.fail(c, operation, err)
	}

	o, err := s.handlers.PayWithUPI.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	return s.respond(c, operation, http.StatusCreated, envelope{
		Success: true,
		Message: "UPI payment successful",
		Order:   toOrderResponse(o),
	})
}

// StartPaymentSession handles POST /api/v1/payments/sessions.
func (s *Server) StartPaymentSession(c echo.Context) error {
	const operation = "start_payment_session"

	var req startPaymentSessionRequest
	if err := c.Bind(&req); err != nil {
		return s.invalidBody(c, operation, err)
	}
	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(c, operation, err)
	}

	cmd, err := commands.NewStartPaymentSessionCommand(orderID, actorFrom(c), req.Amount)
	if err != nil {
		return s.fail(c, operation, err)
	}

	result, err := s.handlers.StartPaymentSession.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	return s.respond(c, operation, http.StatusCreated, envelope{
		Success:     true,
		Message:     "Payment session created",
		Order:       toOrderResponse(result.Order),
		Session:     toSessionResponse(result.Session),
		PaymentLink: result.PaymentLink,
	})
}

// CheckPaymentStatus handles GET /api/v1/payments/sessions/:paymentId.
func (s *Server) CheckPaymentStatus(c echo.Context) error {
	const operation = "check_payment_status"

	paymentID, err := parseUUID("paymentId", c.Param("paymentId"))
	if err != nil {
		return s.fail(c, operation, err)
	}

	query, err := queries.NewCheckPaymentStatusQuery(paymentID, actorFrom(c))
	if err != nil {
		return s.fail(c, operation, err)
	}

	status, err := s.handlers.CheckPaymentStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, operation, err)
	}

	return s.respond(c, operation, http.StatusOK, envelope{
		Success: true,
		Message: "Payment status retrieved",
		Order: &orderResponse{
			OrderID:       status.OrderID.String(),
			OrderNumber:   status.OrderNumber,
			Status:        status.OrderStatus.String(),
			PaymentStatus: string(status.PaymentStatus),
			PaymentMethod: string(status.PaymentMethod),
			TransactionID: status.TransactionID,
			PaidAt:        status.PaidAt,
		},
		Session: &sessionResponse{
			PaymentID:          status.PaymentID.String(),
			OrderID:            status.OrderID.String(),
			Status:             string(status.SessionStatus),
			ExpiresAt:          status.ExpiresAt,
			CollectRequestSent: status.CollectRequestSent,
		},
	})
}

// RequestUPICollect handles POST /api/v1/payments/sessions/:paymentId/collect.
func (s *Server) RequestUPICollect(c echo.Context) error {
	const operation = "request_upi_collect"

	var req collectRequest
	if err := c.Bind(&req); err != nil {
		return s.invalidBody(c, operation, err)
	}
	paymentID, err := parseUUID("paymentId", c.Param("paymentId"))
	if err != nil {
		return s.fail(c, operation, err)
	}

	cmd, err := commands.NewRequestUPICollectCommand(paymentID, actorFrom(c), req.UPIID)
	if err != nil {
		return s.fail(c, operation, err)
	}

	sess, err := s.handlers.RequestUPICollect.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	return s.respond(c, operation, http.StatusOK, envelope{
		Success: true,
		Message: "Collect request sent, waiting for approval",
		Session: toSessionResponse(sess),
	})
}

// SimulatePayment handles POST /api/v1/payments/sessions/:paymentId/simulate.
func (s *Server) SimulatePayment(c echo.Context) error {
	const operation = "simulate_payment"

	paymentID, err := parseUUID("paymentId", c.Param("paymentId"))
	if err != nil {
		return s.fail(c, operation, err)
	}

	cmd, err := commands.NewSimulatePaymentCommand(paymentID, actorFrom(c))
	if err != nil {
		return s.fail(c, operation, err)
	}

	result, err := s.handlers.SimulatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	return s.respond(c, operation, http.StatusOK, envelope{
		Success: true,
		Message: "Payment simulated successfully",
		Order:   toOrderResponse(result.Order),
		Session: toSessionResponse(result.Session),
	})
}

// ConfirmPayment handles POST /api/v1/payments/confirm.
func (s *Server) ConfirmPayment(c echo.Context) error {
	const operation = "confirm_payment"

	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return s.invalidBody(c, operation, err)
	}
	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(c, operation, err)
	}

	var paymentID *kernel.UUID
	if req.PaymentID != "" {
		id, parseErr := parseUUID("paymentId", req.PaymentID)
		if parseErr != nil {
			return s.fail(c, operation, parseErr)
		}
		paymentID = &id
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, actorFrom(c), req.TransactionID, paymentID)
	if err != nil {
		return s.fail(c, operation, err)
	}

	result, err := s.handlers.ConfirmPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	message := "Payment confirmed"
	if result.AlreadyPaid {
		message = "Payment already completed"
	}
	return s.respond(c, operation, http.StatusOK, envelope{Success: true, Message: message, Order: toOrderResponse(result.Order)})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	const operation = "update_order_status"

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return s.invalidBody(c, operation, err)
	}
	orderID, err := parseUUID("orderId", c.Param("orderId"))
	if err != nil {
		return s.fail(c, operation, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorFrom(c), req.Status)
	if err != nil {
		return s.fail(c, operation, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, operation, err)
	}

	return s.respond(c, operation, http.StatusOK, envelope{
		Success: true,
		Message: "Order status updated",
		Order:   toOrderResponse(o),
	})
}

func (s *Server) respond(c echo.Context, operation string, code int, body envelope) error {
	s.metrics.observe(operation, code)
	return c.JSON(code, body)
}
