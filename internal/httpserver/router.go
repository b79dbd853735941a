package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	orderrepo "bookstore/internal/repository/order"
	"bookstore/internal/repository/reference"
	"bookstore/internal/service/account"
	"bookstore/internal/service/catalog"
	ordersvc "bookstore/internal/service/order"
	"bookstore/internal/service/user"
)

// AccountService is the subset of the account service the HTTP layer needs.
type AccountService interface {
	Register(ctx context.Context, in account.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, login, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

// CatalogService serves the public catalog plus back-office book and
// reference management.
type CatalogService interface {
	Search(ctx context.Context, in catalog.SearchInput) (*catalog.SearchResult, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	CreateBook(ctx context.Context, in catalog.BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, in catalog.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	ListReferences(ctx context.Context, kind reference.Kind) ([]domain.Reference, error)
	CreateReference(ctx context.Context, kind reference.Kind, name string) (*domain.Reference, error)
	RenameReference(ctx context.Context, kind reference.Kind, id int64, name string) (*domain.Reference, error)
	DeleteReference(ctx context.Context, kind reference.Kind, id int64) error
}

// CartService manages the session cart.
type CartService interface {
	Get(ctx context.Context, key string) ([]domain.CartItem, decimal.Decimal, error)
	Add(ctx context.Context, key string, item domain.CartItem) error
	UpdateQuantity(ctx context.Context, key string, bookID int64, quantity int) error
	Remove(ctx context.Context, key string, bookID int64) error
}

// CheckoutService turns the session cart into an order.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, sessionKey string, u *domain.User, ship domain.ShippingInfo) (*domain.Order, error)
}

// OrderService backs the order back office.
type OrderService interface {
	List(ctx context.Context, in orderrepo.ListInput) (*ordersvc.ListResult, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	SetStatus(ctx context.Context, id int64, status string) error
}

// UserService backs user administration and the dashboard.
type UserService interface {
	List(ctx context.Context, query string, page, pageSize int) (*user.ListResult, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	SetAdmin(ctx context.Context, actorID, targetID int64, isAdmin bool) error
	Delete(ctx context.Context, actorID, targetID int64) error
	Dashboard(ctx context.Context) (*user.DashboardStats, error)
}

// ReviewService handles reviews and favorites.
type ReviewService interface {
	AddReview(ctx context.Context, userID, bookID int64, rating int, content string) (*domain.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
	DeleteReview(ctx context.Context, actor *domain.User, reviewID int64) error
	ToggleFavorite(ctx context.Context, userID, bookID int64) (bool, error)
	FavoriteBookIDs(ctx context.Context, userID int64) ([]int64, error)
}

// AdminChecker resolves whether a user currently holds the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	Invalidate(userID int64)
}

// Deps bundles everything buildRouter wires into the route tree.
type Deps struct {
	AccountSvc  AccountService
	CatalogSvc  CatalogService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	UserSvc     UserService
	ReviewSvc   ReviewService
	AdminCheck  AdminChecker

	SessionCookie string
	SessionTTL    time.Duration
	MetricsHTTP   gin.HandlerFunc
	CORSOrigins   []string
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, readiness func(ctx context.Context) error, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 || (len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(readiness))
	if deps.MetricsHTTP != nil {
		router.GET("/metrics", deps.MetricsHTTP)
	}

	api := router.Group("/api")
	api.Use(sessionMiddleware(deps.SessionCookie, deps.SessionTTL))
	api.Use(authMiddleware(deps.AccountSvc))

	api.POST("/register", registerHandler(deps.AccountSvc))
	api.POST("/login", loginHandler(deps.AccountSvc))
	api.POST("/logout", logoutHandler(deps.AccountSvc))
	api.GET("/me", requireUser(), meHandler())

	api.GET("/books", searchBooksHandler(deps.CatalogSvc))
	api.GET("/books/:id", getBookHandler(deps.CatalogSvc))
	api.GET("/books/:id/reviews", listReviewsHandler(deps.ReviewSvc))
	api.POST("/books/:id/reviews", requireUser(), addReviewHandler(deps.ReviewSvc))
	api.DELETE("/reviews/:id", requireUser(), deleteReviewHandler(deps.ReviewSvc))

	for _, kind := range []reference.Kind{reference.Authors, reference.Genres, reference.Publishers} {
		api.GET("/"+string(kind), listReferencesHandler(deps.CatalogSvc, kind))
	}

	api.GET("/cart", getCartHandler(deps.CartSvc))
	api.POST("/cart/items", addCartItemHandler(deps.CartSvc, deps.CatalogSvc))
	api.PUT("/cart/items/:bookId", updateCartItemHandler(deps.CartSvc))
	api.DELETE("/cart/items/:bookId", removeCartItemHandler(deps.CartSvc))

	api.POST("/checkout", requireUser(), checkoutHandler(deps.CheckoutSvc))

	api.GET("/favorites", requireUser(), listFavoritesHandler(deps.ReviewSvc))
	api.POST("/favorites/:bookId/toggle", requireUser(), toggleFavoriteHandler(deps.ReviewSvc))

	admin := api.Group("/admin")
	admin.Use(requireUser(), requireAdmin(deps.AdminCheck))
	{
		admin.GET("/dashboard", dashboardHandler(deps.UserSvc))

		admin.POST("/books", createBookHandler(deps.CatalogSvc))
		admin.PUT("/books/:id", updateBookHandler(deps.CatalogSvc))
		admin.DELETE("/books/:id", deleteBookHandler(deps.CatalogSvc))

		for _, kind := range []reference.Kind{reference.Authors, reference.Genres, reference.Publishers} {
			group := admin.Group("/" + string(kind))
			group.POST("", createReferenceHandler(deps.CatalogSvc, kind))
			group.PUT("/:id", renameReferenceHandler(deps.CatalogSvc, kind))
			group.DELETE("/:id", deleteReferenceHandler(deps.CatalogSvc, kind))
		}

		admin.GET("/orders", listOrdersHandler(deps.OrderSvc))
		admin.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
		admin.PUT("/orders/:id/status", setOrderStatusHandler(deps.OrderSvc))

		admin.GET("/users", listUsersHandler(deps.UserSvc))
		admin.GET("/users/:id", getUserHandler(deps.UserSvc))
		admin.PUT("/users/:id/admin", setAdminHandler(deps.UserSvc, deps.AdminCheck))
		admin.DELETE("/users/:id", deleteUserHandler(deps.UserSvc))
	}

	return router
}

func parsePricePtr(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}
