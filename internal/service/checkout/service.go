package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	"bookstore/internal/mailer"
	"bookstore/internal/metrics"
	bookrepo "bookstore/internal/repository/book"
	orderrepo "bookstore/internal/repository/order"
	"bookstore/internal/session"
)

// Service turns a session cart into a persisted order.
type Service struct {
	books   bookrepo.Repository
	orders  orderrepo.Repository
	store   session.Store
	mail    mailer.Mailer
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

func New(books bookrepo.Repository, orders orderrepo.Repository, store session.Store, mail mailer.Mailer, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{
		books:   books,
		orders:  orders,
		store:   store,
		mail:    mail,
		metrics: m,
		log:     log.With().Str("service", "checkout").Logger(),
		now:     time.Now,
	}
}

// PlaceOrder reprices the session cart against the catalog, persists the
// order atomically, and clears the cart. The cart is left untouched when
// anything fails, so the buyer can retry.
func (s *Service) PlaceOrder(ctx context.Context, sessionKey string, user *domain.User, ship domain.ShippingInfo) (*domain.Order, error) {
	ship = normalizeShipping(ship)
	if err := validateShipping(ship); err != nil {
		return nil, err
	}

	items, err := s.store.GetCart(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.BookID)
	}
	prices, err := s.books.PricesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		UserID:        user.ID,
		UserEmail:     user.Email,
		CreatedAt:     s.now().UTC(),
		PaymentMethod: ship.PaymentMethod,
		ShipToName:    ship.FullName,
		Address:       ship.Address,
		City:          ship.City,
		PostalCode:    ship.PostalCode,
		Phone:         ship.Phone,
		Status:        domain.OrderStatusPending,
	}
	for _, it := range items {
		snap, ok := prices[it.BookID]
		if !ok {
			return nil, &domain.OrderabilityError{BookID: it.BookID}
		}
		order.Items = append(order.Items, domain.OrderItem{
			BookID:    it.BookID,
			BookTitle: snap.Title,
			Quantity:  it.Quantity,
			UnitPrice: snap.Price,
		})
		order.Total = order.Total.Add(snap.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	placed, err := s.orders.CreateAtomic(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.store.Clear(ctx, sessionKey); err != nil {
		s.log.Warn().Err(err).Int64("order_id", placed.ID).Msg("cart clear failed after checkout")
	}
	if s.metrics != nil {
		s.metrics.OrdersPlacedTotal.Inc()
		total, _ := placed.Total.Float64()
		s.metrics.OrdersTotalValue.Add(total)
	}
	if err := s.mail.SendOrderConfirmation(placed.UserEmail, placed); err != nil {
		s.log.Warn().Err(err).Int64("order_id", placed.ID).Msg("confirmation mail failed")
	}
	s.log.Info().Int64("order_id", placed.ID).Int64("user_id", user.ID).Str("total", placed.Total.StringFixed(2)).Msg("order placed")
	return placed, nil
}

func normalizeShipping(ship domain.ShippingInfo) domain.ShippingInfo {
	ship.PaymentMethod = strings.TrimSpace(ship.PaymentMethod)
	if ship.PaymentMethod == "" {
		ship.PaymentMethod = "Cash on delivery"
	}
	ship.FullName = strings.TrimSpace(ship.FullName)
	ship.Address = strings.TrimSpace(ship.Address)
	ship.City = strings.TrimSpace(ship.City)
	ship.PostalCode = strings.TrimSpace(ship.PostalCode)
	ship.Phone = strings.TrimSpace(ship.Phone)
	return ship
}

func validateShipping(ship domain.ShippingInfo) error {
	if ship.FullName == "" {
		return domain.Invalidf("recipient name required")
	}
	if ship.Address == "" {
		return domain.Invalidf("address required")
	}
	if ship.City == "" {
		return domain.Invalidf("city required")
	}
	return nil
}
