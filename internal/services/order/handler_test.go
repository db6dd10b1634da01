package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/services/catalog"
	"pizzeria-system/internal/services/menu"
	"pizzeria-system/internal/services/order"
	"pizzeria-system/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	log := logger.New("order-handler-test")

	pizzaStore, err := storage.NewCollection[models.Pizza](dir, "pizzas.json")
	require.NoError(t, err)
	require.NoError(t, pizzaStore.WriteAll([]models.Pizza{
		{CatalogItem: models.CatalogItem{ID: 1, Name: "Margherita", Price: price("8.50"), Available: true}, Ingredients: []string{"Tomato", "Mozzarella", "Basil"}},
		{CatalogItem: models.CatalogItem{ID: 2, Name: "Hawaiian", Price: price("9.50"), Available: false}, Ingredients: []string{"Tomato", "Ham", "Pineapple"}},
	}))
	drinkStore, err := storage.NewCollection[models.Drink](dir, "drinks.json")
	require.NoError(t, err)
	require.NoError(t, drinkStore.WriteAll([]models.Drink{
		{CatalogItem: models.CatalogItem{ID: 1, Name: "Coca-Cola", Price: price("3.50"), Available: true}, Size: "33cl"},
	}))
	dessertStore, err := storage.NewCollection[models.Dessert](dir, "desserts.json")
	require.NoError(t, err)
	require.NoError(t, dessertStore.WriteAll([]models.Dessert{
		{CatalogItem: models.CatalogItem{ID: 1, Name: "Tiramisu", Price: price("5.50"), Available: true}},
	}))
	orderStore, err := storage.NewCollection[models.Order](dir, "orders.json")
	require.NoError(t, err)

	pizzas := catalog.NewService[models.Pizza](pizzaStore, "pizza")
	drinks := catalog.NewService[models.Drink](drinkStore, "drink")
	desserts := catalog.NewService[models.Dessert](dessertStore, "dessert")

	service := order.NewService(orderStore, pizzas, drinks, desserts, menu.Price, log)

	mux := http.NewServeMux()
	order.NewHandler(service, log).Register(mux)
	catalog.NewHandler(pizzas, log).Register(mux, "/pizzas")

	srv := httptest.NewServer(log.HTTPMiddleware(mux))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandler_CreateOrder(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"pizzas":[1],"drinks":[1],"desserts":[1]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.Processed)
	assert.True(t, price("15.75").Equal(created.TotalPrice), "got %s", created.TotalPrice)
}

func TestHandler_CreateOrder_NoPizzasIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"drinks":[1]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateOrder_UnavailableIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"pizzas":[1,2]}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "Hawaiian")
}

func TestHandler_CreateOrder_UnknownFieldIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"pizzas":[1],"totalPrice":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/orders/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_MarkProcessed(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"pizzas":[1]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/orders/1/processed", nil)
	require.NoError(t, err)

	patchResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer patchResp.Body.Close()
	require.Equal(t, http.StatusOK, patchResp.StatusCode)

	var processed models.Order
	require.NoError(t, json.NewDecoder(patchResp.Body).Decode(&processed))
	assert.True(t, processed.Processed)
}

func TestHandler_DeleteOrder(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"pizzas":[1]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/orders/1", nil)
	require.NoError(t, err)

	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)

	getResp, err := http.Get(srv.URL + "/orders/1")
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestHandler_CatalogCRUD(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/pizzas", `{"name":"Quattro Formaggi","price":11.5,"ingredients":["Mozzarella","Gorgonzola"],"available":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Pizza
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, 3, created.ID)

	listResp, err := http.Get(srv.URL + "/pizzas")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var pizzas []models.Pizza
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&pizzas))
	assert.Len(t, pizzas, 3)
}

func TestHandler_HealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
