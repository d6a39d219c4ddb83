package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SergeyBogomolovv/storefront-checkout/pkg/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "user-1", r.Header.Get("X-User-ID"))

		var req checkout.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "razorpay", req.PaymentMethod)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order_id":"o1","order_number":"ORD-1","total":3066,"currency":"INR","payment_method":"razorpay","payment_session_id":"order_sess1","razorpay_key_id":"rzp_test"}`))
	}))
	defer srv.Close()

	client := checkout.NewClient(srv.URL+"/", checkout.WithUserID("user-1"))
	res, err := client.CreateOrder(context.Background(), checkout.OrderRequest{PaymentMethod: "razorpay"})
	require.NoError(t, err)

	assert.Equal(t, "order_sess1", res.PaymentSessionID)
	assert.Equal(t, "rzp_test", res.KeyID)
	assert.Equal(t, int64(3066), res.Total)
}

func TestClient_VerifyPayment_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/verify", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order_sess1", body["razorpay_order_id"])
		assert.Equal(t, "o1", body["order_id"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid payment signature"}`))
	}))
	defer srv.Close()

	client := checkout.NewClient(srv.URL)
	_, err := client.VerifyPayment(context.Background(), checkout.VerifyRequest{
		OrderID:  "o1",
		Callback: checkout.Callback{OrderID: "order_sess1", PaymentID: "pay_1", Signature: "deadbeef"},
	})

	var apiErr *checkout.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid payment signature", apiErr.Message)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := checkout.NewClient(srv.URL).CreateOrder(context.Background(), checkout.OrderRequest{})

	var apiErr *checkout.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
