package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/security"
	"boardinghouse-backend/internal/service"
)

// Services bundles everything the router mounts.
type Services struct {
	Rooms         service.RoomService
	Boarders      service.BoarderService
	Payments      service.PaymentService
	Utilities     service.UtilityService
	Reports       service.ReportService
	Auth          service.AuthService
	Notifications service.NotificationService
}

// NewRouter builds the full API surface. Management routes under /api/v1
// require a staff token; /api/v1/me is open to any authenticated session;
// /api/v1/auth is public.
func NewRouter(svcs Services, tokens security.TokenManager) http.Handler {
	root := mux.NewRouter()
	root.Use(requestLogging)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(svcs.Auth)
	authHandler.Register(api)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(tokens))

	NewNotificationHandler(svcs.Notifications).Register(authed)
	paymentHandler := NewPaymentHandler(svcs.Payments)
	paymentHandler.RegisterSelf(authed)

	staff := authed.NewRoute().Subrouter()
	staff.Use(requireStaff)

	authHandler.RegisterProtected(staff)
	NewRoomHandler(svcs.Rooms).Register(staff)
	NewBoarderHandler(svcs.Boarders).Register(staff)
	paymentHandler.Register(staff)
	NewUtilityHandler(svcs.Utilities).Register(staff)
	NewReportHandler(svcs.Reports).Register(staff)

	return root
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
