package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/adapters/hasher"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/sequence"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/store"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/tokenizer"
	"github.com/SiddeshHulagur/Expense-Tracker/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tk, err := tokenizer.NewJWTTokenizer("router-test-secret!", zap.NewNop())
	require.NoError(t, err)

	st := store.NewMemoryStore()
	alloc := sequence.NewMemoryAllocator()
	log := zap.NewNop()

	authService := service.NewAuthService(st, alloc, hasher.NewBcrypt(), tk, nil, log)
	expenseService := service.NewExpenseService(st, alloc, nil, log)

	return SetupRouter(authService, expenseService)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAda(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@x.com",
		"password":   "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t)
	registerAda(t, router)

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "ada@x.com",
		"password": "pw123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "ada@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Duplicate registration conflicts.
	w = doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@x.com",
		"password":   "pw123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExpenseEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerAda(t, router)

	// Empty list to start.
	w := doJSON(t, router, http.MethodGet, "/api/expenses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Create.
	w = doJSON(t, router, http.MethodPost, "/api/expenses", token, gin.H{
		"description": "groceries",
		"amount":      "42.50",
		"date":        "2026-08-30",
		"category":    "food",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created expenseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	// Read back.
	w = doJSON(t, router, http.MethodGet, "/api/expenses/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Update.
	w = doJSON(t, router, http.MethodPut, "/api/expenses/1", token, gin.H{
		"description": "restaurant",
		"amount":      "99.99",
		"date":        "2026-08-31",
		"category":    "dining",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated expenseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "restaurant", updated.Description)

	// Delete.
	w = doJSON(t, router, http.MethodDelete, "/api/expenses/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/expenses/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpenseIsolationBetweenUsers(t *testing.T) {
	router := newTestRouter(t)
	adaToken := registerAda(t, router)

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"first_name": "Eve",
		"last_name":  "Mallory",
		"email":      "eve@x.com",
		"password":   "pw456",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	eveToken := resp.Token

	w = doJSON(t, router, http.MethodPost, "/api/expenses", adaToken, gin.H{
		"description": "groceries",
		"amount":      "42.50",
		"date":        "2026-08-30",
		"category":    "food",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Eve cannot see, change or list Ada's expense.
	w = doJSON(t, router, http.MethodGet, "/api/expenses/1", eveToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/expenses/1", eveToken, gin.H{
		"description": "stolen",
		"amount":      "0.01",
		"date":        "2026-08-30",
		"category":    "theft",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/expenses", eveToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/expenses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/expenses", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
