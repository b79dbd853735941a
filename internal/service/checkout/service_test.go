package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bookstore/internal/domain"
	"bookstore/internal/mailer"
	bookrepo "bookstore/internal/repository/book"
	orderrepo "bookstore/internal/repository/order"
	"bookstore/internal/session"
)

// priceStub serves a fixed price table; only PricesByIDs matters here.
type priceStub struct {
	prices map[int64]bookrepo.PriceSnapshot
}

func (s *priceStub) PricesByIDs(_ context.Context, ids []int64) (map[int64]bookrepo.PriceSnapshot, error) {
	out := make(map[int64]bookrepo.PriceSnapshot)
	for _, id := range ids {
		if snap, ok := s.prices[id]; ok {
			out[id] = snap
		}
	}
	return out, nil
}

func (s *priceStub) SearchPaged(context.Context, bookrepo.SearchInput) ([]domain.Book, int, error) {
	return nil, 0, nil
}
func (s *priceStub) GetByID(context.Context, int64) (*domain.Book, error) {
	return nil, domain.ErrNotFound
}
func (s *priceStub) Create(context.Context, domain.Book) (*domain.Book, error) { return nil, nil }
func (s *priceStub) Update(context.Context, domain.Book) (*domain.Book, error) { return nil, nil }
func (s *priceStub) Delete(context.Context, int64) error                       { return nil }
func (s *priceStub) Count(context.Context) (int, error)                        { return len(s.prices), nil }

// orderStub records the single order it is asked to create.
type orderStub struct {
	created *domain.Order
	fail    error
}

func (s *orderStub) CreateAtomic(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	o.ID = 101
	for i := range o.Items {
		o.Items[i].ID = int64(i + 1)
		o.Items[i].OrderID = o.ID
	}
	s.created = &o
	return &o, nil
}

func (s *orderStub) GetByID(context.Context, int64) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}
func (s *orderStub) ListPaged(context.Context, orderrepo.ListInput) ([]domain.Order, int, error) {
	return nil, 0, nil
}
func (s *orderStub) SetStatus(context.Context, int64, string) error { return nil }
func (s *orderStub) Count(context.Context) (int, error)             { return 0, nil }

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		PaymentMethod: "card",
		FullName:      "Test Reader",
		Address:       "1 Library Way",
		City:          "Booktown",
		PostalCode:    "12345",
		Phone:         "555-0100",
	}
}

func seedCart(t *testing.T, store session.Store, key string, items []domain.CartItem) {
	t.Helper()
	if err := store.SetCart(context.Background(), key, items); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	store := session.NewMemoryStore()
	svc := New(&priceStub{}, &orderStub{}, store, mailer.Noop{}, nil, zerolog.Nop())

	_, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 1}, testShipping())
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrder_RepricesFromCatalog(t *testing.T) {
	store := session.NewMemoryStore()
	books := &priceStub{prices: map[int64]bookrepo.PriceSnapshot{
		1: {Title: "Dune", Price: price("12.50")},
		2: {Title: "Hyperion", Price: price("8.00")},
	}}
	orders := &orderStub{}
	svc := New(books, orders, store, mailer.Noop{}, nil, zerolog.Nop())

	// Cart carries stale display prices; the order must use catalog prices.
	seedCart(t, store, "s1", []domain.CartItem{
		{BookID: 1, BookTitle: "Dune", Quantity: 2, UnitPrice: price("9.99")},
		{BookID: 2, BookTitle: "Hyperion", Quantity: 1, UnitPrice: price("7.00")},
	})

	placed, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 7, Email: "r@example.com"}, testShipping())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if want := price("33.00"); !placed.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", placed.Total, want)
	}
	if placed.Status != domain.OrderStatusPending {
		t.Fatalf("status = %q", placed.Status)
	}
	if placed.PaymentMethod != "card" {
		t.Fatalf("payment method = %q", placed.PaymentMethod)
	}
	if placed.CreatedAt.Location() != time.UTC {
		t.Fatalf("created at not UTC: %v", placed.CreatedAt)
	}
	if len(placed.Items) != 2 {
		t.Fatalf("items = %d", len(placed.Items))
	}
	if !placed.Items[0].UnitPrice.Equal(price("12.50")) {
		t.Fatalf("item repriced wrong: %s", placed.Items[0].UnitPrice)
	}

	// The cart is cleared once the order is persisted.
	items, err := store.GetCart(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart not cleared: %d lines", len(items))
	}
}

func TestPlaceOrder_UnavailableBook(t *testing.T) {
	store := session.NewMemoryStore()
	books := &priceStub{prices: map[int64]bookrepo.PriceSnapshot{
		1: {Title: "Dune", Price: price("12.50")},
	}}
	svc := New(books, &orderStub{}, store, mailer.Noop{}, nil, zerolog.Nop())

	seedCart(t, store, "s1", []domain.CartItem{
		{BookID: 1, Quantity: 1, UnitPrice: price("12.50")},
		{BookID: 99, Quantity: 1, UnitPrice: price("5.00")},
	})

	_, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 1}, testShipping())
	var oe *domain.OrderabilityError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OrderabilityError, got %v", err)
	}
	if oe.BookID != 99 {
		t.Fatalf("wrong book flagged: %d", oe.BookID)
	}

	// A failed checkout leaves the cart intact.
	items, _ := store.GetCart(context.Background(), "s1")
	if len(items) != 2 {
		t.Fatalf("cart modified on failure: %d lines", len(items))
	}
}

func TestPlaceOrder_PersistFailureKeepsCart(t *testing.T) {
	store := session.NewMemoryStore()
	books := &priceStub{prices: map[int64]bookrepo.PriceSnapshot{
		1: {Title: "Dune", Price: price("12.50")},
	}}
	orders := &orderStub{fail: errors.New("db down")}
	svc := New(books, orders, store, mailer.Noop{}, nil, zerolog.Nop())

	seedCart(t, store, "s1", []domain.CartItem{{BookID: 1, Quantity: 1, UnitPrice: price("12.50")}})

	if _, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 1}, testShipping()); err == nil {
		t.Fatal("expected error")
	}
	items, _ := store.GetCart(context.Background(), "s1")
	if len(items) != 1 {
		t.Fatalf("cart modified on persist failure: %d lines", len(items))
	}
}

func TestPlaceOrder_RejectsBlankShipping(t *testing.T) {
	store := session.NewMemoryStore()
	svc := New(&priceStub{}, &orderStub{}, store, mailer.Noop{}, nil, zerolog.Nop())
	seedCart(t, store, "s1", []domain.CartItem{{BookID: 1, Quantity: 1, UnitPrice: price("1.00")}})

	ship := testShipping()
	ship.FullName = "  "
	if _, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 1}, ship); err == nil {
		t.Fatal("expected error for blank recipient")
	}
}

// failingMailer rejects every send.
type failingMailer struct{}

func (failingMailer) SendWelcome(string, string) error { return errors.New("relay down") }
func (failingMailer) SendOrderConfirmation(string, *domain.Order) error {
	return errors.New("relay down")
}

func TestPlaceOrder_MailFailureDoesNotFailCheckout(t *testing.T) {
	store := session.NewMemoryStore()
	books := &priceStub{prices: map[int64]bookrepo.PriceSnapshot{
		1: {Title: "Dune", Price: price("12.50")},
	}}
	svc := New(books, &orderStub{}, store, failingMailer{}, nil, zerolog.Nop())
	seedCart(t, store, "s1", []domain.CartItem{{BookID: 1, Quantity: 1, UnitPrice: price("12.50")}})

	placed, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 1, Email: "r@example.com"}, testShipping())
	if err != nil {
		t.Fatalf("checkout failed on mail error: %v", err)
	}
	if placed.ID == 0 {
		t.Fatal("order not persisted")
	}
	// The cart is still cleared; the order stands.
	items, _ := store.GetCart(context.Background(), "s1")
	if len(items) != 0 {
		t.Fatalf("cart not cleared: %d lines", len(items))
	}
}

func TestPlaceOrder_DefaultsPaymentMethod(t *testing.T) {
	store := session.NewMemoryStore()
	books := &priceStub{prices: map[int64]bookrepo.PriceSnapshot{
		1: {Title: "Dune", Price: price("12.50")},
	}}
	svc := New(books, &orderStub{}, store, mailer.Noop{}, nil, zerolog.Nop())
	seedCart(t, store, "s1", []domain.CartItem{{BookID: 1, Quantity: 1, UnitPrice: price("12.50")}})

	ship := testShipping()
	ship.PaymentMethod = ""
	placed, err := svc.PlaceOrder(context.Background(), "s1", &domain.User{ID: 1}, ship)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if placed.PaymentMethod != "Cash on delivery" {
		t.Fatalf("payment method = %q", placed.PaymentMethod)
	}
}
