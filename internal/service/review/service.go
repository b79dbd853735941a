package review

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"bookstore/internal/domain"
	favrepo "bookstore/internal/repository/favorite"
	reviewrepo "bookstore/internal/repository/review"
)

// ErrForbidden is returned when a user touches a review they do not own.
var ErrForbidden = errors.New("not allowed")

// Service handles book reviews and per-user favorites.
type Service struct {
	reviews   reviewrepo.Repository
	favorites favrepo.Repository
	log       zerolog.Logger
}

func New(reviews reviewrepo.Repository, favorites favrepo.Repository, log zerolog.Logger) *Service {
	return &Service{
		reviews:   reviews,
		favorites: favorites,
		log:       log.With().Str("service", "review").Logger(),
	}
}

// AddReview validates and stores a review. Rating is a 1 to 5 star value.
func (s *Service) AddReview(ctx context.Context, userID, bookID int64, rating int, content string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Invalidf("rating must be between 1 and 5")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Invalidf("review text required")
	}
	return s.reviews.Create(ctx, domain.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  rating,
		Content: content,
	})
}

// ListByBook returns a book's reviews, newest first.
func (s *Service) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// DeleteReview removes a review. Only the author or an admin may do so.
func (s *Service) DeleteReview(ctx context.Context, actor *domain.User, reviewID int64) error {
	r, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if r.UserID != actor.ID && !actor.IsAdmin {
		return ErrForbidden
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.log.Info().Int64("review_id", reviewID).Int64("actor_id", actor.ID).Msg("review deleted")
	return nil
}

// ToggleFavorite flips a book's favorite state for the user and reports
// the new state.
func (s *Service) ToggleFavorite(ctx context.Context, userID, bookID int64) (bool, error) {
	exists, err := s.favorites.Exists(ctx, userID, bookID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.favorites.Remove(ctx, userID, bookID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.favorites.Add(ctx, userID, bookID); err != nil {
		return false, err
	}
	return true, nil
}

// FavoriteBookIDs lists the user's pinned books, most recent first.
func (s *Service) FavoriteBookIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.favorites.ListBookIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
