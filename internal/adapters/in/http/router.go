package http

import (
	"net/http"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SubscriptionServer upgrades a request to a notification stream for an
// authenticated actor.
type SubscriptionServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, actor kernel.Actor)
}

// RegisterRoutes mounts the API, the WebSocket endpoint, health and metrics on e.
// A nil ws leaves /ws unregistered. /ws sits behind ActorMiddleware like the
// API, so the rooms a socket joins follow from the gateway identity.
func RegisterRoutes(e *echo.Echo, s *Server, ws SubscriptionServer, gatherer prometheus.Gatherer) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if ws != nil {
		e.GET("/ws", func(c echo.Context) error {
			ws.ServeWS(c.Response(), c.Request(), actorFrom(c))
			return nil
		}, ActorMiddleware)
	}

	api := e.Group("/api/v1", ActorMiddleware)

	payments := api.Group("/payments")
	payments.POST("", s.CreatePayment)
	payments.POST("/upi", s.PayWithUPI)
	payments.POST("/confirm", s.ConfirmPayment)
	payments.POST("/sessions", s.StartPaymentSession)
	payments.GET("/sessions/:paymentId", s.CheckPaymentStatus)
	payments.POST("/sessions/:paymentId/collect", s.RequestUPICollect)
	payments.POST("/sessions/:paymentId/simulate", s.SimulatePayment)

	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
}
