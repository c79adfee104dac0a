package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/mtodo/internal/handler"
	"github.com/xxxsen/mtodo/internal/middleware"
	"github.com/xxxsen/mtodo/internal/pkg/jwt"
	"github.com/xxxsen/mtodo/internal/repo"
	"github.com/xxxsen/mtodo/internal/service"
	"github.com/xxxsen/mtodo/internal/testutil"
)

const testSecret = "test-secret"

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	signer, err := jwt.NewSigner([]byte(testSecret), 24*time.Hour)
	require.NoError(t, err)

	authService := service.NewAuthService(repo.NewUserRepo(db), signer)
	todoService := service.NewTodoService(repo.NewTodoRepo(db))

	deps := handler.RouterDeps{
		Auth:   handler.NewAuthHandler(authService),
		Todos:  handler.NewTodoHandler(todoService),
		Health: handler.NewHealthHandler(db),
		Tokens: signer,
	}

	engine, err := webapi.NewEngine(
		"/api",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine
}

type apiResponse struct {
	Code int
	Body []byte
}

func (r apiResponse) decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

func (r apiResponse) errorMessage(t *testing.T) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	r.decode(t, &body)
	return body.Error
}

func call(t *testing.T, router http.Handler, method, path, token string, body interface{}) apiResponse {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		var payload []byte
		switch v := body.(type) {
		case string:
			payload = []byte(v)
		default:
			var err error
			payload, err = json.Marshal(v)
			require.NoError(t, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return apiResponse{Code: resp.Code, Body: resp.Body.Bytes()}
}

func signupAndSignin(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": password}
	resp := call(t, router, http.MethodPost, "/api/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Body))

	resp = call(t, router, http.MethodPost, "/api/auth/signin", "", creds)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	resp.decode(t, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}
