package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/cache"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	util "github.com/spec-kit/user-service/pkg/util"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// UserList is a page of users plus the totals computed for it.
type UserList struct {
	Users      []domain.User
	Total      int64
	Page       int
	PerPage    int
	TotalPages int64
}

// UserService implements the user resource operations. It owns the business
// rules (required fields, pagination sanitizing, merge-patch) and leaves
// protocol concerns to the HTTP boundary.
type UserService struct {
	users      repository.UserRepository
	cache      *cache.UserCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Cache      *cache.UserCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService creates the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create inserts a new user. The store assigns the identifier and both
// timestamps; a duplicate email surfaces as a conflict.
func (s *UserService) Create(ctx context.Context, input dto.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, util.NewValidationError("name and email are required", map[string]any{
			"name":  name != "",
			"email": email != "",
		})
	}

	user := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(events.EventUserCreated, user)
	return user, nil
}

// Get looks a user up by identifier, serving from the cache when possible.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if cached := s.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, user)
	return user, nil
}

// List returns one page of users ordered by creation time descending. An
// out-of-range page yields an empty list with the same totals; that is not
// an error.
func (s *UserService) List(ctx context.Context, p dto.Pagination) (*UserList, error) {
	page, perPage := sanitizePagination(p)
	offset := (page - 1) * perPage

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, perPage, offset)
	if err != nil {
		return nil, err
	}

	return &UserList{
		Users:      users,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + int64(perPage) - 1) / int64(perPage),
	}, nil
}

// Update applies a merge-patch: present fields overwrite, absent fields are
// untouched. updated_at is refreshed on every matching invocation, even when
// the patch is empty.
func (s *UserService) Update(ctx context.Context, id string, input dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, input.Name, input.Email)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, user)
	s.publish(events.EventUserUpdated, user)
	return user, nil
}

// Delete permanently removes the user. Deleting an unknown identifier
// reports not found, never success.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	s.publish(events.EventUserDeleted, &domain.User{ID: id})
	return nil
}

func (s *UserService) publish(eventType events.EventType, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.Event{
		Type:      eventType,
		UserID:    user.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.UserMutationPayload{
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// sanitizePagination clamps client-supplied paging values so the offset and
// total-page arithmetic stay well-defined: page floors at 1, per_page falls
// back to the default when non-positive and is capped at maxPerPage.
func sanitizePagination(p dto.Pagination) (page, perPage int) {
	page = p.Page
	if page < 1 {
		page = defaultPage
	}
	perPage = p.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
