package user

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"bookstore/internal/domain"
	bookrepo "bookstore/internal/repository/book"
	orderrepo "bookstore/internal/repository/order"
	userrepo "bookstore/internal/repository/user"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ErrSelfDemotion is returned when an admin tries to drop their own flag.
var ErrSelfDemotion = errors.New("cannot change own admin flag")

// Service backs the user administration screens and the dashboard.
type Service struct {
	users  userrepo.Repository
	books  bookrepo.Repository
	orders orderrepo.Repository
	log    zerolog.Logger
}

func New(users userrepo.Repository, books bookrepo.Repository, orders orderrepo.Repository, log zerolog.Logger) *Service {
	return &Service{
		users:  users,
		books:  books,
		orders: orders,
		log:    log.With().Str("service", "user").Logger(),
	}
}

// ListResult is one page of the user listing.
type ListResult struct {
	Users    []domain.User `json:"users"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// List searches accounts by username or email substring.
func (s *Service) List(ctx context.Context, query string, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	users, total, err := s.users.SearchPaged(ctx, query, page, pageSize)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return &ListResult{Users: users, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get returns an account profile with its reviews.
func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// SetAdmin grants or revokes the admin flag. An actor can never change
// their own flag; locking yourself out takes a second admin.
func (s *Service) SetAdmin(ctx context.Context, actorID, targetID int64, isAdmin bool) error {
	if actorID == targetID {
		return ErrSelfDemotion
	}
	if err := s.users.SetAdmin(ctx, targetID, isAdmin); err != nil {
		return err
	}
	s.log.Info().Int64("actor_id", actorID).Int64("user_id", targetID).Bool("is_admin", isAdmin).Msg("admin flag changed")
	return nil
}

// Delete removes an account. Accounts with orders on file come back as
// domain.ErrHasOrders.
func (s *Service) Delete(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return domain.Invalidf("cannot delete own account")
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.log.Info().Int64("actor_id", actorID).Int64("user_id", targetID).Msg("user deleted")
	return nil
}

// DashboardStats are the headline counts on the admin landing page.
type DashboardStats struct {
	Users  int `json:"users"`
	Books  int `json:"books"`
	Orders int `json:"orders"`
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.books.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{Users: users, Books: books, Orders: orders}, nil
}
