package httpserver_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

type listResponse struct {
	Data []models.Product `json:"data"`
	Meta struct {
		Page    int   `json:"page"`
		Size    int   `json:"size"`
		Total   int64 `json:"total"`
		HasNext bool  `json:"has_next"`
		HasPrev bool  `json:"has_prev"`
	} `json:"meta"`
}

func TestListProducts_FirstPageNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		env.createProduct(
			fmt.Sprintf("product %02d", i),
			"plain description",
			9.99,
			base.Add(time.Duration(i)*time.Minute),
		)
	}

	rec := env.doJSON(http.MethodGet, "/?q=&page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 12)
	assert.EqualValues(t, 15, resp.Meta.Total)
	assert.True(t, resp.Meta.HasNext)
	assert.False(t, resp.Meta.HasPrev)
	assert.Equal(t, "product 14", resp.Data[0].Name)
}

func TestListProducts_SearchFiltersByNameOrDescription(t *testing.T) {
	env := newTestEnv(t)

	now := time.Now().UTC()
	env.createProduct("Running Shoe", "lightweight trainer", 59.99, now)
	env.createProduct("Leather Boot", "a sturdy shoe for winter", 89.99, now.Add(time.Minute))
	env.createProduct("Sun Hat", "wide brim", 14.99, now.Add(2*time.Minute))

	rec := env.doJSON(http.MethodGet, "/?q=SHOE&page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 2, resp.Meta.Total)
	require.Len(t, resp.Data, 2)
	for _, p := range resp.Data {
		assert.NotEqual(t, "Sun Hat", p.Name)
	}
}

func TestListProducts_BadPageFallsBackToFirst(t *testing.T) {
	env := newTestEnv(t)

	env.createProduct("product", "plain", 9.99, time.Now().UTC())

	for _, raw := range []string{"0", "-2", "abc", ""} {
		rec := env.doJSON(http.MethodGet, "/?page="+raw, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Meta.Page, "page=%q", raw)
	}
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	product := env.createProduct("shoe", "running shoe", 49.99, time.Now().UTC())

	rec := env.doJSON(http.MethodGet, "/api/v1/products/"+product.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, product.ID, resp.ID)
	assert.Equal(t, "shoe", resp.Name)

	rec = env.doJSON(http.MethodGet, "/api/v1/products/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
