// File: internal/handler/auth/login_test.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fechas-bloqueo/internal/api"
	"fechas-bloqueo/internal/config"
	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/model"
	"fechas-bloqueo/internal/service"
	"fechas-bloqueo/internal/store"
	"fechas-bloqueo/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	getActiveUser = store.GetActiveUserByUsername
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	touchUltimo = store.TouchUltimoAcceso
}

// syncPool runs tasks inline so the test can assert on their effects.
type syncPool struct {
	mu    sync.Mutex
	tasks int
}

func (p *syncPool) Submit(t worker.Task) {
	p.mu.Lock()
	p.tasks++
	p.mu.Unlock()
	t()
}
func (p *syncPool) Stop() {}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

func testCfg() *config.Config {
	return &config.Config{SecretKey: "s", TokenTTL: 30 * time.Minute}
}

func newLoginCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	db := &database.FakeDB{}
	wp := &syncPool{}

	// bind error
	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec := newLoginCtx(e, "")
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = errValidator{}
	ctx, rec = newLoginCtx(e, `{"username":"a","password":"b"}`)
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown user and wrong password return the identical body
	e = echo.New()
	e.Validator = okValidator{}
	getActiveUser = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, store.ErrNotFound
	}
	ctx, rec = newLoginCtx(e, `{"username":"nadie","password":"x"}`)
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	unknownBody := rec.Body.String()

	getActiveUser = func(context.Context, database.DB, string) (*model.User, error) {
		return &model.User{Username: "usuario", HashedPassword: "h"}, nil
	}
	authenticateUser = func(context.Context, model.User, string) error {
		return service.ErrInvalidCredentials
	}
	ctx, rec = newLoginCtx(e, `{"username":"usuario","password":"mal"}`)
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, unknownBody, rec.Body.String())

	// token issue failure
	authenticateUser = func(context.Context, model.User, string) error { return nil }
	issueAccessToken = func(string, string, time.Duration) (string, error) {
		return "", errors.New("sign")
	}
	ctx, rec = newLoginCtx(e, `{"username":"usuario","password":"user456"}`)
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success issues a token, reports the TTL and touches ultimo_acceso
	issueAccessToken = service.IssueAccessToken
	touched := ""
	touchUltimo = func(_ context.Context, _ database.DB, username string) error {
		touched = username
		return nil
	}
	ctx, rec = newLoginCtx(e, `{"username":"usuario","password":"user456"}`)
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"access_token"`)
	require.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
	require.Contains(t, rec.Body.String(), `"expires_in_minutes":30`)
	require.NotContains(t, rec.Body.String(), "hashed_password")
	require.Equal(t, "usuario", touched)

	// a failing timestamp update does not fail the login
	touchUltimo = func(context.Context, database.DB, string) error { return errors.New("down") }
	ctx, rec = newLoginCtx(e, `{"username":"usuario","password":"user456"}`)
	require.NoError(t, LoginHandler(db, wp, testCfg())(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginTokenRoundTrip(t *testing.T) {
	t.Cleanup(restoreGlobals)
	e := echo.New()
	e.Validator = okValidator{}
	wp := &syncPool{}

	hash, err := service.HashPassword("user456")
	require.NoError(t, err)
	getActiveUser = func(_ context.Context, _ database.DB, username string) (*model.User, error) {
		if username != "usuario" {
			return nil, store.ErrNotFound
		}
		return &model.User{ID: 2, Username: "usuario", HashedPassword: hash, Activo: true}, nil
	}
	touchUltimo = func(context.Context, database.DB, string) error { return nil }

	ctx, rec := newLoginCtx(e, `{"username":"usuario","password":"user456"}`)
	require.NoError(t, LoginHandler(&database.FakeDB{}, wp, testCfg())(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	sub, err := service.VerifyAccessToken("s", resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "usuario", sub)
}
