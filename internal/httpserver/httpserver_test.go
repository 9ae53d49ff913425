package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
)

var testJWTSecret = []byte("test-jwt-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		JWTSecret:      testJWTSecret,
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) createUser(email string) *models.User {
	env.T.Helper()
	u := models.User{Email: email, Name: "Test User"}
	require.NoError(env.T, env.DB.Create(&u).Error)
	return &u
}

func (env *testEnv) createProduct(name, description string, price float64, createdAt time.Time) *models.Product {
	env.T.Helper()
	p := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   createdAt,
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return &p
}

func sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()

	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testJWTSecret)
	require.NoError(t, err)

	return &http.Cookie{Name: "accessToken", Value: token, Path: "/"}
}

func (env *testEnv) doJSON(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}
