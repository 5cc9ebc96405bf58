package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/Nethupa05/Hardware-Backend/internal/auth"
	mid "github.com/Nethupa05/Hardware-Backend/internal/middleware"
	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/notify"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/config"
	"github.com/Nethupa05/Hardware-Backend/pkg/jwtutil"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	e   *echo.Echo
	db  *gorm.DB
	jwt *jwtutil.JWTUtil

	users        *store.UserStore
	products     *store.ProductStore
	quotations   *store.QuotationStore
	reservations *store.ReservationStore
}

// newTestEnv wires the full route table over an in-memory database, the
// same shape the server builds at startup.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// each sqlite :memory: connection is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Supplier{},
		&model.Quotation{},
		&model.QuotationItem{},
		&model.Reservation{},
	))

	jwtUtil := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	notifier := notify.NewNotifier(zap.NewNop())
	authenticator := auth.NewAuthenticator(db, jwtUtil)

	env := &testEnv{
		db:           db,
		jwt:          jwtUtil,
		users:        store.NewUserStore(db),
		products:     store.NewProductStore(db, notifier),
		quotations:   store.NewQuotationStore(db),
		reservations: store.NewReservationStore(db),
	}
	suppliers := store.NewSupplierStore(db, notifier)

	userHandler := NewUserHandler(env.users, jwtUtil, false)
	productHandler := NewProductHandler(env.products)
	supplierHandler := NewSupplierHandler(suppliers)
	quotationHandler := NewQuotationHandler(env.quotations)
	reservationHandler := NewReservationHandler(env.reservations)

	e := echo.New()
	e.Validator = NewRequestValidator()

	requireAuth := mid.Auth(authenticator)
	optionalAuth := mid.OptionalAuth(authenticator)
	adminOnly := mid.RequireRoles(model.RoleAdmin)

	e.GET("/health", Health)

	userAPI := e.Group("/api/users")
	userAPI.POST("/register", userHandler.Register)
	userAPI.POST("/login", userHandler.Login)
	userAPI.GET("/me", userHandler.Me, requireAuth)
	userAPI.PUT("/me", userHandler.UpdateMe, requireAuth)
	userAPI.DELETE("/me", userHandler.DeleteMe, requireAuth)
	userAPI.PUT("/password", userHandler.ChangePassword, requireAuth)
	userAPI.GET("", userHandler.List, requireAuth, adminOnly)
	userAPI.PUT("/:id", userHandler.Update, requireAuth, adminOnly)

	productAPI := e.Group("/api/products")
	productAPI.GET("", productHandler.List, optionalAuth)
	productAPI.GET("/low-stock", productHandler.LowStock, requireAuth, adminOnly)
	productAPI.GET("/categories", productHandler.Categories)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create, requireAuth, adminOnly)
	productAPI.PUT("/:id", productHandler.Update, requireAuth, adminOnly)
	productAPI.DELETE("/:id", productHandler.Delete, requireAuth, adminOnly)
	productAPI.PATCH("/:id/stock", productHandler.AdjustStock, requireAuth, adminOnly)

	supplierAPI := e.Group("/api/suppliers", requireAuth, adminOnly)
	supplierAPI.POST("", supplierHandler.Create)
	supplierAPI.GET("", supplierHandler.List)

	quotationAPI := e.Group("/api/quotations")
	quotationAPI.POST("", quotationHandler.Create, optionalAuth)
	quotationAPI.GET("", quotationHandler.List, requireAuth, adminOnly)
	quotationAPI.GET("/my-quotations", quotationHandler.Mine, requireAuth)
	quotationAPI.GET("/:id", quotationHandler.Get, requireAuth)
	quotationAPI.PATCH("/:id/status", quotationHandler.UpdateStatus, requireAuth, adminOnly)

	reservationAPI := e.Group("/api/reservations", requireAuth)
	reservationAPI.POST("", reservationHandler.Create)
	reservationAPI.GET("", reservationHandler.List, adminOnly)
	reservationAPI.GET("/my-reservations", reservationHandler.Mine)
	reservationAPI.GET("/:id", reservationHandler.Get)
	reservationAPI.PUT("/:id", reservationHandler.Update)
	reservationAPI.PATCH("/:id/status", reservationHandler.UpdateStatus, adminOnly)
	reservationAPI.DELETE("/:id", reservationHandler.Delete, adminOnly)

	env.e = e
	return env
}

// signUp creates an account directly in the store and returns a token for it
func (env *testEnv) signUp(t *testing.T, email, role string) (*model.User, string) {
	t.Helper()
	u := &model.User{FullName: "Handler Test", Email: email, Role: role}
	require.NoError(t, env.users.Register(u, "secret1"))
	token, err := env.jwt.GenerateToken(u.ID)
	require.NoError(t, err)
	return u, token
}

// request performs a JSON request against the wired routes. An empty
// token sends the request anonymously.
func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decodeBody(t, rec)["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", rec.Body.String())
	return data
}

func listOf(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	data, ok := decodeBody(t, rec)["data"].([]interface{})
	require.True(t, ok, "response has no data array: %s", rec.Body.String())
	return data
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
