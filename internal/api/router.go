package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/chickensystem/restaurant-api/docs"
	"github.com/chickensystem/restaurant-api/internal/api/handler"
	"github.com/chickensystem/restaurant-api/internal/api/middleware"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// Options carries the HTTP-level settings of the router.
type Options struct {
	JWTSecret      string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	Session        handler.SessionOptions
}

// Services are the domain services and collaborators the handlers delegate to.
type Services struct {
	Auth          ports.AuthService
	Identity      ports.IdentityResolver
	Provider      ports.IdentityProvider // nil disables federated login
	Products      ports.ProductService
	Locations     ports.LocationService
	Orders        ports.OrderService
	Payments      ports.PaymentService
	Reservations  ports.ReservationService
	Testimonials  ports.TestimonialService
	Notifications ports.NotificationService
	ActivityLogs  ports.ActivityLogService
	HealthChecks  map[string]handler.HealthCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.CORS(opts.CORSOrigins))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddleware("restaurant_http"))

	// --- Observability (no auth required) ---
	health := handler.NewHealthHandler(svc.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Auth(opts.JWTSecret, svc.Identity)
	admin := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api", middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	// --- Accounts ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", authHandler.Profile, authn)
	users.PUT("/profile", authHandler.UpdateProfile, authn)

	sessionHandler := handler.NewSessionHandler(svc.Auth, svc.Provider, opts.Session, log)
	session := api.Group("/auth")
	session.GET("/google/web", sessionHandler.Start)
	session.GET("/google/callback", sessionHandler.Callback)
	session.GET("/me", sessionHandler.Me, middleware.Session(opts.JWTSecret, svc.Identity))
	session.GET("/logout", sessionHandler.Logout)

	// --- Catalogue ---
	catalog := handler.NewCatalogHandler(svc.Products, svc.Locations)
	products := api.Group("/products")
	products.GET("", catalog.ListProducts)
	products.GET("/:id", catalog.GetProduct)
	products.POST("", catalog.CreateProduct, authn, admin)
	products.PUT("/:id", catalog.UpdateProduct, authn, admin)
	products.DELETE("/:id", catalog.DeleteProduct, authn, admin)

	locations := api.Group("/locations")
	locations.GET("", catalog.ListLocations)
	locations.POST("", catalog.CreateLocation, authn, admin)
	locations.PUT("/:id", catalog.UpdateLocation, authn, admin)
	locations.DELETE("/:id", catalog.DeleteLocation, authn, admin)

	// --- Orders & payments ---
	orderHandler := handler.NewOrderHandler(svc.Orders)
	orders := api.Group("/orders", authn)
	orders.POST("", orderHandler.Create)
	orders.GET("/user", orderHandler.ListMine)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("", orderHandler.ListAll, admin)
	orders.PUT("/:id/status", orderHandler.SetStatus, admin)

	paymentHandler := handler.NewPaymentHandler(svc.Payments)
	payments := api.Group("/payments", authn)
	payments.POST("", paymentHandler.Create)
	payments.GET("/user", paymentHandler.ListMine)
	payments.GET("", paymentHandler.ListAll, admin)
	payments.PUT("/:id/status", paymentHandler.SetStatus, admin)

	// --- Reservations ---
	reservationHandler := handler.NewReservationHandler(svc.Reservations)
	reservations := api.Group("/reservations", authn)
	reservations.POST("", reservationHandler.Create)
	reservations.GET("/user", reservationHandler.ListMine)
	reservations.GET("/:id", reservationHandler.Get)
	reservations.GET("", reservationHandler.ListAll, admin)
	reservations.PUT("/:id/status", reservationHandler.SetStatus, admin)

	// --- Testimonials ---
	testimonialHandler := handler.NewTestimonialHandler(svc.Testimonials)
	testimonials := api.Group("/testimonials")
	testimonials.GET("", testimonialHandler.ListPublic)
	testimonials.POST("", testimonialHandler.Create, authn)
	testimonials.GET("/pending", testimonialHandler.ListPending, authn, admin)
	testimonials.PUT("/:id/approve", testimonialHandler.Approve, authn, admin)

	// --- Notifications & activity ---
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	notifications := api.Group("/notifications", authn)
	notifications.POST("", notificationHandler.Create, admin)
	notifications.GET("/user", notificationHandler.ListMine)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)

	activityHandler := handler.NewActivityLogHandler(svc.ActivityLogs)
	activity := api.Group("/activity-logs", authn)
	activity.GET("/user", activityHandler.ListMine)
	activity.GET("", activityHandler.ListAll, admin)

	return e
}
