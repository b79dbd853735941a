package order

import (
	"context"

	"github.com/rs/zerolog"

	"bookstore/internal/domain"
	orderrepo "bookstore/internal/repository/order"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service backs the order back-office screens.
type Service struct {
	orders orderrepo.Repository
	log    zerolog.Logger
}

func New(orders orderrepo.Repository, log zerolog.Logger) *Service {
	return &Service{orders: orders, log: log.With().Str("service", "order").Logger()}
}

// ListResult is one page of the order listing.
type ListResult struct {
	Orders   []domain.Order `json:"orders"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// List returns a filtered, paginated slice of orders, newest first.
func (s *Service) List(ctx context.Context, in orderrepo.ListInput) (*ListResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}
	if in.Status != "" && !domain.ValidOrderStatus(in.Status) {
		return nil, domain.Invalidf("unknown status %q", in.Status)
	}

	orders, total, err := s.orders.ListPaged(ctx, in)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &ListResult{Orders: orders, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// SetStatus moves an order to a new fulfillment status.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.Invalidf("unknown status %q", status)
	}
	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info().Int64("order_id", id).Str("status", status).Msg("order status changed")
	return nil
}
