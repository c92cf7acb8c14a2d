package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func TestGetCart_BareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		w.Write([]byte(`[{"id":1,"product_id":10,"model_id":20,"name":"a","price":99.5,"qty":2}]`))
	})

	lines, err := client.GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, 2, lines[0].Qty)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromFloat(99.5)))
}

func TestGetCart_WrappedItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":3,"product_id":1,"model_id":1,"name":"b","price":10,"qty":1}]}`))
	})

	lines, err := client.GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].ID)
}

func TestGetCart_RemoteRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"not logged in"}`))
	})

	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, IsRemoteRejection(err))

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
	assert.Equal(t, "not logged in", re.Message)
}

func TestCreateOrder_SingleID(t *testing.T) {
	var got CreateOrderRequest
	var idempotencyKey string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order/create", r.URL.Path)
		idempotencyKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"order_id":42}`))
	})

	req := CreateOrderRequest{
		Items: []domain.OrderItem{
			{ProductID: 10, ModelID: 20, Quantity: 1, Price: decimal.NewFromInt(100)},
		},
		Address: "X",
		Total:   decimal.NewFromInt(100),
	}
	orderID, err := client.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	assert.NotEmpty(t, idempotencyKey, "order create must carry an idempotency key")
	assert.Equal(t, "X", got.Address)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(100)))
}

func TestCreateOrder_IDListFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_ids":[7,8,9]}`))
	})

	orderID, err := client.CreateOrder(context.Background(), CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), orderID, "first id of order_ids wins")
}

func TestCreateOrder_NoID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrNoOrderID)
}

func TestPayOrder_SendsOrderID(t *testing.T) {
	var body map[string]int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order/pay", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.PayOrder(context.Background(), 42))
	assert.Equal(t, int64(42), body["order_id"])
}

func TestOrderDetail_QueryParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		w.Write([]byte(`{"id":42,"status":"paid","total_price":100,"address":"X","created_at":"2026-01-02 15:04:05"}`))
	})

	detail, err := client.OrderDetail(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, detail.Status)
	assert.Equal(t, "X", detail.Address)
}

func TestOrderCounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pending":1,"toship":2,"toreceive":3,"toreview":4,"refund":5}`))
	})

	counts, err := client.OrderCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCounts{Pending: 1, ToShip: 2, ToReceive: 3, ToReview: 4, Refund: 5}, counts)
}

func TestOrderList_StatusFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		w.Write([]byte(`[{"id":1,"status":"pending","total_price":35,"created_at":"2026-01-02 15:04:05","item_count":2}]`))
	})

	orders, err := client.OrderList(context.Background(), domain.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].ItemCount)
}

func TestTransportError_NotRemoteRejection(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.GetCart(context.Background())
	require.Error(t, err)
	assert.False(t, IsRemoteRejection(err))
}
