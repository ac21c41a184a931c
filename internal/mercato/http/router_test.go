package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mercatohq/mercato/internal/mercato/service"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/internal/mercato/store/drivers/sqlite"
	"github.com/mercatohq/mercato/pkg/cryptox"
	"github.com/mercatohq/mercato/pkg/idx"
	"github.com/mercatohq/mercato/pkg/jwtx"
	"github.com/mercatohq/mercato/pkg/storesdk"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "mercato-http-test-pepper"))
	os.Exit(m.Run())
}

const (
	testSecret   = "router-test-secret-0123456789abcdef"
	testIssuer   = "mercato-test"
	testPassword = "Sup3rSecret!"
)

type testEnv struct {
	router *Router
	store  store.Store
	users  *service.UserService
	auth   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + idx.New().String() + "?mode=memory&cache=shared"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHMAC("HS256", []byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewCommonHMAC("HS256", []byte(testSecret), testIssuer)
	require.NoError(t, err)

	auth := &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    testIssuer,
		AccessTTL: time.Hour,
	}
	users := &service.UserService{Store: st}

	router := NewRouter(signer, verifier, "test", st, slog.New(slog.DiscardHandler))
	router.AuthService = auth
	router.UserService = users
	router.CatalogService = &service.CatalogService{Store: st}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, users: users, auth: auth}
}

// registerAndLogin creates an account through the service layer and returns
// its id together with a token valid for an hour.
func (e *testEnv) registerAndLogin(t *testing.T, username string) (userID, token string) {
	t.Helper()
	ctx := context.Background()

	u, err := e.users.Register(ctx, service.RegisterParams{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	issued, err := e.auth.Login(ctx, username, testPassword)
	require.NoError(t, err)

	return u.ID, issued.Token
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) storesdk.APIError {
	t.Helper()
	var out storesdk.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// A token issued before a soft delete must stop working the moment the
// account is deactivated, even though its signature and expiry still check
// out. In particular it must not be able to flip the account back on.
func TestSoftDeleteInvalidatesExistingToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID, token := env.registerAndLogin(t, "rita")

	rec := env.do(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "token should work while the account is active")

	require.NoError(t, env.users.SoftDelete(ctx, userID))

	t.Run("ReadsRejected", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/users/me", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, storesdk.ErrorCodeInvalidToken, decodeError(t, rec).Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("CannotSelfReactivate", func(t *testing.T) {
		rec := env.do(http.MethodPatch, "/api/v1/users/"+userID+"/toggle-status", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, storesdk.ErrorCodeInvalidToken, decodeError(t, rec).Code)

		u, err := env.store.Users().GetUserByID(ctx, userID)
		require.NoError(t, err)
		require.False(t, u.IsActive, "account must stay deactivated")
	})

	t.Run("CatalogWritesRejected", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/categories/", token, storesdk.CategoryRequest{
			Name: "Sneaky",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHardDeleteInvalidatesExistingToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID, token := env.registerAndLogin(t, "hugo")
	require.NoError(t, env.users.HardDelete(ctx, userID))

	rec := env.do(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, storesdk.ErrorCodeInvalidToken, decodeError(t, rec).Code)
}

func TestLoginJSONEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "nadia")

	t.Run("Success", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/auth/login-json", "", storesdk.LoginRequest{
			Username: "nadia",
			Password: testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var token storesdk.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
		require.NotEmpty(t, token.AccessToken)
		require.Equal(t, "bearer", token.TokenType)
	})

	t.Run("MissingPassword", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/auth/login-json", "", storesdk.LoginRequest{
			Username: "nadia",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, storesdk.ErrorCodeValidation, decodeError(t, rec).Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/auth/login-json", "", storesdk.LoginRequest{
			Username: "nadia",
			Password: "nope-nope-nope",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, storesdk.ErrorCodeAuth, decodeError(t, rec).Code)
	})
}

func TestVerifyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerAndLogin(t, "vera")

	t.Run("ValidToken", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/auth/verify", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var out storesdk.VerifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.True(t, out.Valid)
		require.Equal(t, userID, out.UserID)
		require.Equal(t, "vera", out.Username)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/auth/verify", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, storesdk.ErrorCodeInvalidToken, decodeError(t, rec).Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "lars")

	rec := env.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out storesdk.LogoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Contains(t, out.Message, "lars")

	rec = env.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
