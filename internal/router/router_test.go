package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emerpc1992/horale/internal/config"
	"github.com/emerpc1992/horale/internal/infra"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, infra.RunMigrations(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	users := repository.NewUserRepository(db)
	require.NoError(t, users.Create(context.Background(), &model.User{
		Username:     "admin",
		Name:         "Admin",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}))

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
		BusinessName:       "Horale",
		PDFStoragePath:     t.TempDir(),
	}
	return New(cfg, db, nil, nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": "admin",
		"password": "secreta",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/v1/sales", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSaleFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	// Catalog and staff setup.
	w := doJSON(t, r, http.MethodPost, "/v1/products", token, gin.H{
		"name": "Shampoo", "cost_price": "30", "price": "55", "stock": 10, "min_stock": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	w = doJSON(t, r, http.MethodPost, "/v1/staff", token, gin.H{"name": "María"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var staff struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &staff))

	// Register a sale.
	w = doJSON(t, r, http.MethodPost, "/v1/sales", token, gin.H{
		"client_name":    "Cliente",
		"staff_id":       staff.ID,
		"commission":     "10",
		"discount":       "5",
		"payment_method": "cash",
		"items": []gin.H{
			{"product_id": product.ID, "product_name": "Shampoo", "quantity": 2, "price": "55"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, "105", sale.Total)

	// Stock was decremented.
	w = doJSON(t, r, http.MethodGet, "/v1/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock":8`)

	// Overselling yields 409.
	w = doJSON(t, r, http.MethodPost, "/v1/sales", token, gin.H{
		"client_name":    "Cliente",
		"staff_id":       staff.ID,
		"commission":     "0",
		"discount":       "0",
		"payment_method": "cash",
		"items": []gin.H{
			{"product_id": product.ID, "product_name": "Shampoo", "quantity": 99, "price": "55"},
		},
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// Cancel restores stock; a second cancel conflicts.
	w = doJSON(t, r, http.MethodDelete, "/v1/sales/"+sale.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/v1/sales/"+sale.ID, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/products/"+product.ID, token, nil)
	assert.Contains(t, w.Body.String(), `"stock":10`)
}

func TestClearCommissionsRequiresConfirmation(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/v1/staff", token, gin.H{"name": "María"})
	require.Equal(t, http.StatusCreated, w.Code)
	var staff struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &staff))

	path := fmt.Sprintf("/v1/staff/%s/commissions", staff.ID)
	w = doJSON(t, r, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, path+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"sales_cleared":0`)
}

func TestCommissionReportAcceptsEmptyBody(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/v1/staff", token, gin.H{"name": "María"})
	require.Equal(t, http.StatusCreated, w.Code)
	var staff struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &staff))

	// A report without discounts needs no body at all.
	path := fmt.Sprintf("/v1/staff/%s/commissions", staff.ID)
	w = doJSON(t, r, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total_discounts":"0"`)

	w = doJSON(t, r, http.MethodPost, path, token, gin.H{"discounts": []any{}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestFinancialReportOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/v1/reports/financial", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gross_sales":"0"`)
	assert.Contains(t, w.Body.String(), `"total_transactions":0`)
}

func TestValidationErrorsReturn422(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/v1/sales", token, gin.H{
		"client_name":    "",
		"staff_id":       uuid.NewString(),
		"payment_method": "cash",
		"items":          []gin.H{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}
