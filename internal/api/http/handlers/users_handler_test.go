package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-service/internal/api/http"
	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/persistence"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/service"
	util "github.com/spec-kit/user-service/pkg/util"
)

const knownID = "6a7b8c9d-0000-4000-8000-000000000001"

type stubUserRepo struct {
	createFn func(ctx context.Context, user *domain.User) error
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context, limit, offset int) ([]domain.User, error)
	countFn  func(ctx context.Context) (int64, error)
	updateFn func(ctx context.Context, id string, name, email *string) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func (s *stubUserRepo) Update(ctx context.Context, id string, name, email *string) (*domain.User, error) {
	return s.updateFn(ctx, id, name, email)
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newTestApp(repo repository.UserRepository) *fiber.App {
	logger := zap.NewNop()
	userService := service.NewUserService(service.UserDependencies{
		UserRepo: repo,
		Logger:   logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler("user-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Users:     handlers.NewUsersHandler(userService),
		Calculate: handlers.NewCalculateHandler(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp, nil
	}

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope, got %v", body)
	code, _ := errObj["code"].(string)
	return code
}

func TestCreateUserReturns201WithStoredRow(t *testing.T) {
	now := time.Now().UTC()
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			user.ID = knownID
			user.CreatedAt = now
			user.UpdatedAt = now
			return nil
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodPost, "/users",
		`{"name":"Alice","email":"alice@example.com"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, knownID, body["id"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["created_at"])
	assert.NotEmpty(t, body["updated_at"])
}

func TestCreateUserRejectsMalformedBody(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			t.Fatal("must not reach the repository")
			return nil
		},
	}

	resp, _ := doJSON(t, newTestApp(repo), http.MethodPost, "/users", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			t.Fatal("must not reach the repository")
			return nil
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodPost, "/users", `{"name":"Alice"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, util.CodeValidationFailed, errorCode(t, body))
}

func TestCreateUserDuplicateEmailReturns409(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			return util.NewConflict("email already in use", nil)
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodPost, "/users",
		`{"name":"Alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, util.CodeConflict, errorCode(t, body))
}

func TestGetUserByID(t *testing.T) {
	repo := &stubUserRepo{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodGet, "/users/"+knownID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice", body["name"])
}

func TestGetUserUnknownUUIDReturns404(t *testing.T) {
	repo := &stubUserRepo{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, util.NewNotFound("user", nil)
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodGet, "/users/"+knownID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, util.CodeNotFound, errorCode(t, body))
}

func TestGetUserMalformedIDReturns400(t *testing.T) {
	repo := &stubUserRepo{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			t.Fatal("must not reach the repository")
			return nil, nil
		},
	}

	resp, _ := doJSON(t, newTestApp(repo), http.MethodGet, "/users/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListUsersPaginatedBody(t *testing.T) {
	repo := &stubUserRepo{
		countFn: func(ctx context.Context) (int64, error) { return 25, nil },
		listFn: func(ctx context.Context, limit, offset int) ([]domain.User, error) {
			assert.Equal(t, 10, limit)
			assert.Equal(t, 10, offset)
			return []domain.User{{ID: knownID, Name: "Alice", Email: "alice@example.com"}}, nil
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodGet, "/users?page=2&per_page=10", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(25), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(10), body["per_page"])
	assert.Equal(t, float64(3), body["total_pages"])
	users, ok := body["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 1)
}

func TestListUsersEmptyStoreEncodesEmptyArray(t *testing.T) {
	repo := &stubUserRepo{
		countFn: func(ctx context.Context) (int64, error) { return 0, nil },
		listFn: func(ctx context.Context, limit, offset int) ([]domain.User, error) {
			return nil, nil
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	users, ok := body["users"].([]any)
	require.True(t, ok, "users must encode as [], not null")
	assert.Empty(t, users)
	assert.Equal(t, float64(0), body["total_pages"])
}

func TestUpdateUserPartialPatchKeepsEmail(t *testing.T) {
	repo := &stubUserRepo{
		updateFn: func(ctx context.Context, id string, name, email *string) (*domain.User, error) {
			require.NotNil(t, name)
			assert.Nil(t, email)
			return &domain.User{ID: id, Name: *name, Email: "alice@example.com"}, nil
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodPut, "/users/"+knownID, `{"name":"Bob"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bob", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestUpdateUserNotFoundReturns404(t *testing.T) {
	repo := &stubUserRepo{
		updateFn: func(ctx context.Context, id string, name, email *string) (*domain.User, error) {
			return nil, util.NewNotFound("user", nil)
		},
	}

	resp, _ := doJSON(t, newTestApp(repo), http.MethodPut, "/users/"+knownID, `{"name":"Bob"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUserReturns204(t *testing.T) {
	repo := &stubUserRepo{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}

	resp, _ := doJSON(t, newTestApp(repo), http.MethodDelete, "/users/"+knownID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeleteUserTwiceReturns404(t *testing.T) {
	deleted := false
	repo := &stubUserRepo{
		deleteFn: func(ctx context.Context, id string) error {
			if deleted {
				return util.NewNotFound("user", nil)
			}
			deleted = true
			return nil
		},
	}
	app := newTestApp(repo)

	resp, _ := doJSON(t, app, http.MethodDelete, "/users/"+knownID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodDelete, "/users/"+knownID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, util.CodeNotFound, errorCode(t, body))
}

func TestStorageFailureStaysOpaque(t *testing.T) {
	repo := &stubUserRepo{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, util.NewStorageFailure(context.DeadlineExceeded)
		},
	}

	resp, body := doJSON(t, newTestApp(repo), http.MethodGet, "/users/"+knownID, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, util.CodeStorageFailure, errObj["code"])
	assert.Equal(t, "storage operation failed", errObj["message"])
}
