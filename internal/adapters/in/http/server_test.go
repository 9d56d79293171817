package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var respondedAt = time.Date(2026, 4, 18, 20, 30, 0, 0, time.UTC)

type testAPI struct {
	echo     *echo.Echo
	customer kernel.Actor

	createPayment *MockCreatePaymentHandler
	payWithUPI    *MockPayWithUPIHandler
	startSession  *MockStartPaymentSessionHandler
	collect       *MockRequestUPICollectHandler
	confirm       *MockConfirmPaymentHandler
	simulate      *MockSimulatePaymentHandler
	updateStatus  *MockUpdateOrderStatusHandler
	checkStatus   *MockCheckPaymentStatusHandler
}

func newTestAPI(t *testing.T, development bool) *testAPI {
	t.Helper()

	api := &testAPI{
		echo:          echo.New(),
		customer:      kernel.Actor{UserID: kernel.NewUUID(), Role: kernel.RoleCustomer},
		createPayment: new(MockCreatePaymentHandler),
		payWithUPI:    new(MockPayWithUPIHandler),
		startSession:  new(MockStartPaymentSessionHandler),
		collect:       new(MockRequestUPICollectHandler),
		confirm:       new(MockConfirmPaymentHandler),
		simulate:      new(MockSimulatePaymentHandler),
		updateStatus:  new(MockUpdateOrderStatusHandler),
		checkStatus:   new(MockCheckPaymentStatusHandler),
	}

	registry := prometheus.NewRegistry()
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreatePayment:       api.createPayment,
		PayWithUPI:          api.payWithUPI,
		StartPaymentSession: api.startSession,
		RequestUPICollect:   api.collect,
		ConfirmPayment:      api.confirm,
		SimulatePayment:     api.simulate,
		UpdateOrderStatus:   api.updateStatus,
		CheckPaymentStatus:  api.checkStatus,
	}, httpadapter.NewMetrics(registry), slog.New(slog.NewTextHandler(io.Discard, nil)), development)
	httpadapter.RegisterRoutes(api.echo, server, nil, registry)

	t.Cleanup(func() {
		for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
			api.createPayment, api.payWithUPI, api.startSession, api.collect,
			api.confirm, api.simulate, api.updateStatus, api.checkStatus,
		} {
			m.AssertExpectations(t)
		}
	})
	return api
}

func (api *testAPI) do(method, target, body string, actor *kernel.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if actor != nil {
		req.Header.Set(httpadapter.HeaderUserID, actor.UserID.String())
		req.Header.Set(httpadapter.HeaderUserRole, actor.Role.String())
	}
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	return rec
}

type responseBody struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Order         json.RawMessage `json:"order"`
	Session       json.RawMessage `json:"session"`
	PaymentLink   string          `json:"paymentLink"`
	PaidAt        *time.Time      `json:"paidAt"`
	CurrentStatus string          `json:"currentStatus"`
	Error         string          `json:"error"`
}

type orderBody struct {
	OrderID       string     `json:"orderId"`
	OrderNumber   string     `json:"orderNumber"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	PaymentMethod string     `json:"paymentMethod"`
	TransactionID string     `json:"transactionId"`
	PaidAt        *time.Time `json:"paidAt"`
}

type sessionBody struct {
	PaymentID          string    `json:"paymentId"`
	OrderID            string    `json:"orderId"`
	Status             string    `json:"status"`
	ExpiresAt          time.Time `json:"expiresAt"`
	CollectRequestSent bool      `json:"collectRequestSent"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseBody {
	t.Helper()
	var body responseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeOrder(t *testing.T, body responseBody) orderBody {
	t.Helper()
	var o orderBody
	require.NoError(t, json.Unmarshal(body.Order, &o))
	return o
}

func decodeSession(t *testing.T, body responseBody) sessionBody {
	t.Helper()
	var s sessionBody
	require.NoError(t, json.Unmarshal(body.Session, &s))
	return s
}

func paidOrder(t *testing.T, owner kernel.Actor) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-4401", owner.UserID, nil, respondedAt.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, o.PayWithUPI("diner@okbank", "gpay", "TXN1776544200000", respondedAt, owner))
	return o
}

func TestCreatePayment_UPI_ReturnsPaidOrder(t *testing.T) {
	api := newTestAPI(t, false)
	o := paidOrder(t, api.customer)
	api.createPayment.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreatePaymentCommand) bool {
		return cmd.OrderID().IsEqual(o.ID()) && cmd.Method() == order.MethodUPI && cmd.Amount() == 349.5 &&
			cmd.Actor() == api.customer
	})).Return(o, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments",
		`{"orderId":"`+o.ID().String()+`","amount":349.5,"paymentMethod":"upi","upiId":"diner@okbank","upiApp":"gpay"}`,
		&api.customer)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Payment successful", body.Message)
	projected := decodeOrder(t, body)
	assert.Equal(t, "ORD-4401", projected.OrderNumber)
	assert.Equal(t, "paid", projected.Status)
	assert.Equal(t, "paid", projected.PaymentStatus)
	assert.Equal(t, "upi", projected.PaymentMethod)
	assert.Equal(t, "TXN1776544200000", projected.TransactionID)
	require.NotNil(t, projected.PaidAt)
	assert.True(t, respondedAt.Equal(*projected.PaidAt))
}

func TestCreatePayment_COD_ReportsConfirmation(t *testing.T) {
	api := newTestAPI(t, false)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-4402", api.customer.UserID, nil, respondedAt)
	require.NoError(t, err)
	require.NoError(t, o.ChooseCashOnDelivery(respondedAt, api.customer))
	api.createPayment.On("Handle", mock.Anything, mock.Anything).Return(o, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments",
		`{"orderId":"`+o.ID().String()+`","amount":120,"paymentMethod":"cod"}`, &api.customer)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Order confirmed with cash on delivery", body.Message)
	assert.Equal(t, "confirmed", decodeOrder(t, body).Status)
}

func TestCreatePayment_ValidationFailure_DoesNotReachHandler(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(http.MethodPost, "/api/v1/payments",
		`{"orderId":"`+kernel.NewUUID().String()+`","amount":0,"paymentMethod":"card"}`, &api.customer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "amount")
	assert.Contains(t, body.Message, "paymentMethod")
}

func TestCreatePayment_MalformedOrderID_IsBadRequest(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(http.MethodPost, "/api/v1/payments",
		`{"orderId":"order-1","amount":10,"paymentMethod":"cod"}`, &api.customer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "orderId")
}

func TestCreatePayment_MalformedBody_IsBadRequest(t *testing.T) {
	api := newTestAPI(t, true)

	rec := api.do(http.MethodPost, "/api/v1/payments", `{"amount":`, &api.customer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Invalid request body", body.Message)
	assert.NotEmpty(t, body.Error)
}

func TestCreatePayment_AlreadyPaid_IsConflictWithPaidAt(t *testing.T) {
	api := newTestAPI(t, false)
	paidAt := respondedAt.Add(-time.Minute)
	api.createPayment.On("Handle", mock.Anything, mock.Anything).
		Return(nil, &order.PaymentCompletedError{OrderNumber: "ORD-1", PaidAt: &paidAt}).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments",
		`{"orderId":"`+kernel.NewUUID().String()+`","amount":10,"paymentMethod":"cod"}`, &api.customer)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Payment already completed", body.Message)
	require.NotNil(t, body.PaidAt)
	assert.True(t, paidAt.Equal(*body.PaidAt))
}

func TestCreatePayment_StatusMismatch_NamesCurrentStatus(t *testing.T) {
	api := newTestAPI(t, false)
	api.createPayment.On("Handle", mock.Anything, mock.Anything).
		Return(nil, &order.StatusMismatchError{Current: order.Cancelled, Expected: order.PendingPayment}).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments",
		`{"orderId":"`+kernel.NewUUID().String()+`","amount":10,"paymentMethod":"cod"}`, &api.customer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "cancelled", body.CurrentStatus)
	assert.Equal(t, "Order is in cancelled status", body.Message)
}

func TestCreatePayment_InternalFailure(t *testing.T) {
	for _, development := range []bool{false, true} {
		api := newTestAPI(t, development)
		api.createPayment.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset by peer")).Once()

		rec := api.do(http.MethodPost, "/api/v1/payments",
			`{"orderId":"`+kernel.NewUUID().String()+`","amount":10,"paymentMethod":"cod"}`, &api.customer)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Internal server error", body.Message)
		if development {
			assert.Equal(t, "connection reset by peer", body.Error)
		} else {
			assert.Empty(t, body.Error)
		}
	}
}

func TestActorMiddleware(t *testing.T) {
	t.Run("should reject requests without identity", func(t *testing.T) {
		api := newTestAPI(t, false)

		rec := api.do(http.MethodPost, "/api/v1/payments", `{}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject unknown roles", func(t *testing.T) {
		api := newTestAPI(t, false)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpadapter.HeaderUserID, kernel.NewUUID().String())
		req.Header.Set(httpadapter.HeaderUserRole, "chef")
		rec := httptest.NewRecorder()

		api.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should default to the customer role", func(t *testing.T) {
		api := newTestAPI(t, false)
		o := paidOrder(t, api.customer)
		api.payWithUPI.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PayWithUPICommand) bool {
			return cmd.Actor().Role == kernel.RoleCustomer
		})).Return(o, nil).Once()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/upi",
			strings.NewReader(`{"orderId":"`+o.ID().String()+`","amount":10,"upiId":"diner@okbank"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpadapter.HeaderUserID, api.customer.UserID.String())
		rec := httptest.NewRecorder()

		api.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestPayWithUPI_InvalidUPIID_IsBadRequest(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(http.MethodPost, "/api/v1/payments/upi",
		`{"orderId":"`+kernel.NewUUID().String()+`","amount":10,"upiId":"diner"}`, &api.customer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "upiId")
}

func TestStartPaymentSession_ReturnsSessionAndLink(t *testing.T) {
	api := newTestAPI(t, false)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-4403", api.customer.UserID, nil, respondedAt)
	require.NoError(t, err)
	sess, err := session.NewSession(kernel.NewUUID(), o.ID(), 99.9, respondedAt, 5*time.Minute)
	require.NoError(t, err)
	api.startSession.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.StartPaymentSessionCommand) bool {
		return cmd.OrderID().IsEqual(o.ID()) && cmd.Amount() == 99.9
	})).Return(commands.StartPaymentSessionResult{Session: sess, Order: o, PaymentLink: "upi://pay?pa=x@y"}, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments/sessions",
		`{"orderId":"`+o.ID().String()+`","amount":99.9}`, &api.customer)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "upi://pay?pa=x@y", body.PaymentLink)
	projected := decodeSession(t, body)
	assert.Equal(t, sess.PaymentID().String(), projected.PaymentID)
	assert.Equal(t, "created", projected.Status)
	assert.True(t, respondedAt.Add(5*time.Minute).Equal(projected.ExpiresAt))
}

func TestCheckPaymentStatus(t *testing.T) {
	t.Run("should return order and session state", func(t *testing.T) {
		api := newTestAPI(t, false)
		paymentID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		api.checkStatus.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.CheckPaymentStatusQuery) bool {
			return q.PaymentID().IsEqual(paymentID)
		})).Return(queries.CheckPaymentStatusQueryResponse{
			PaymentID:     paymentID,
			OrderID:       orderID,
			OrderNumber:   "ORD-4404",
			OrderStatus:   order.PendingPayment,
			PaymentStatus: order.PaymentPending,
			SessionStatus: session.StatusCollectRequested,
			ExpiresAt:     respondedAt,

			CollectRequestSent: true,
		}, nil).Once()

		rec := api.do(http.MethodGet, "/api/v1/payments/sessions/"+paymentID.String(), "", &api.customer)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "pending_payment", decodeOrder(t, body).Status)
		projected := decodeSession(t, body)
		assert.Equal(t, "collect_requested", projected.Status)
		assert.True(t, projected.CollectRequestSent)
	})

	t.Run("should map expired session to gone", func(t *testing.T) {
		api := newTestAPI(t, false)
		paymentID := kernel.NewUUID()
		api.checkStatus.On("Handle", mock.Anything, mock.Anything).
			Return(queries.CheckPaymentStatusQueryResponse{},
				errs.NewObjectExpiredError("payment session", paymentID.String(), respondedAt)).Once()

		rec := api.do(http.MethodGet, "/api/v1/payments/sessions/"+paymentID.String(), "", &api.customer)

		require.Equal(t, http.StatusGone, rec.Code)
		assert.Equal(t, "Payment session expired", decode(t, rec).Message)
	})

	t.Run("should map missing session to not found", func(t *testing.T) {
		api := newTestAPI(t, false)
		paymentID := kernel.NewUUID()
		api.checkStatus.On("Handle", mock.Anything, mock.Anything).
			Return(queries.CheckPaymentStatusQueryResponse{},
				errs.NewObjectNotFoundError("payment session", paymentID.String())).Once()

		rec := api.do(http.MethodGet, "/api/v1/payments/sessions/"+paymentID.String(), "", &api.customer)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRequestUPICollect_ReturnsWaitingSession(t *testing.T) {
	api := newTestAPI(t, false)
	sess, err := session.NewSession(kernel.NewUUID(), kernel.NewUUID(), 40, respondedAt, time.Minute)
	require.NoError(t, err)
	sess.MarkCollectRequested("a@bc", respondedAt)
	api.collect.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RequestUPICollectCommand) bool {
		return cmd.UPIID() == "a@bc" && cmd.PaymentID().IsEqual(sess.PaymentID())
	})).Return(sess, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments/sessions/"+sess.PaymentID().String()+"/collect",
		`{"upiId":"a@bc"}`, &api.customer)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Collect request sent, waiting for approval", body.Message)
	assert.True(t, decodeSession(t, body).CollectRequestSent)
}

func TestSimulatePayment_ForeignOrder_IsForbidden(t *testing.T) {
	api := newTestAPI(t, false)
	paymentID := kernel.NewUUID()
	api.simulate.On("Handle", mock.Anything, mock.Anything).
		Return(commands.SimulatePaymentResult{}, errs.NewAccessDeniedError(api.customer, "order", kernel.NewUUID())).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments/sessions/"+paymentID.String()+"/simulate", "", &api.customer)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestConfirmPayment_AlreadyPaid_IsSuccessful(t *testing.T) {
	api := newTestAPI(t, false)
	o := paidOrder(t, api.customer)
	paymentID := kernel.NewUUID()
	api.confirm.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ConfirmPaymentCommand) bool {
		return cmd.PaymentID() != nil && cmd.PaymentID().IsEqual(paymentID) && cmd.TransactionID() == "EXT-1"
	})).Return(commands.ConfirmPaymentResult{Order: o, AlreadyPaid: true}, nil).Once()

	rec := api.do(http.MethodPost, "/api/v1/payments/confirm",
		`{"orderId":"`+o.ID().String()+`","transactionId":"EXT-1","paymentId":"`+paymentID.String()+`"}`, &api.customer)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Payment already completed", body.Message)
	assert.Equal(t, "TXN1776544200000", decodeOrder(t, body).TransactionID)
}

func TestUpdateOrderStatus_PolicyDenial_IsForbidden(t *testing.T) {
	api := newTestAPI(t, false)
	courier := kernel.Actor{UserID: kernel.NewUUID(), Role: kernel.RoleDelivery}
	orderID := kernel.NewUUID()
	api.updateStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderStatusCommand) bool {
		return cmd.Status() == order.Delivered && cmd.Actor() == courier
	})).Return(nil, &commands.TransitionDeniedError{Role: kernel.RoleDelivery, From: order.Paid, To: order.Delivered}).Once()

	rec := api.do(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status", `{"status":"delivered"}`, &courier)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "may not move an order from paid to delivered")
}

func TestMetrics_CountsRequestsByOutcome(t *testing.T) {
	api := newTestAPI(t, false)
	api.do(http.MethodPost, "/api/v1/payments", `{"amount":0}`, &api.customer)

	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`fooddelivery_payments_requests_total{code="400",operation="create_payment"} 1`)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}
