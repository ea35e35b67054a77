package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports/mocks"
	rest "github.com/Gunvolt24/rapid_express/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
)

func init() { gin.SetMode(gin.TestMode) }

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const testToken = "test-token"

type fixture struct {
	orders    *mocks.MockOrderService
	auth      *mocks.MockAuthService
	users     *mocks.MockUserService
	customers *mocks.MockCustomerService
	products  *mocks.MockProductService
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		orders:    mocks.NewMockOrderService(ctrl),
		auth:      mocks.NewMockAuthService(ctrl),
		users:     mocks.NewMockUserService(ctrl),
		customers: mocks.NewMockCustomerService(ctrl),
		products:  mocks.NewMockProductService(ctrl),
	}
	h := rest.NewHandler(rest.Services{
		Orders:    f.orders,
		Auth:      f.auth,
		Users:     f.users,
		Customers: f.customers,
		Products:  f.products,
	}, noopLogger{}, time.Second)
	f.router = rest.NewRouter(h, "")
	return f
}

// loggedIn: testToken принадлежит пользователю userID.
func (f *fixture) loggedIn(userID int64) {
	f.auth.EXPECT().Authenticate(gomock.Any(), testToken).
		Return(&domain.User{ID: userID, Name: "Cooper", Email: "cooper@test.com", PasswordHash: "secret-hash"}, nil).
		AnyTimes()
}

// do: запрос с Bearer-токеном (если token не пуст).
func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
	Meta    json.RawMessage `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	if env.Status != w.Code {
		t.Fatalf("envelope status %d != http status %d", env.Status, w.Code)
	}
	return env
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) envelope {
	t.Helper()
	if w.Code != want {
		t.Fatalf("want %d, got %d, body=%s", want, w.Code, w.Body.String())
	}
	return decode(t, w)
}
