package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/simple-crm/internal/model"
)

func TestListCustomers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Alice","email":"a@x.io","phone":"1","status":"Active"}]`))
	}))
	defer srv.Close()

	customers, err := NewClient(srv.URL+"/", time.Second).ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, model.StatusActive, customers[0].Status)
}

func TestListCustomersNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	customers, err := NewClient(srv.URL, 0).ListCustomers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestCreateCustomerSendsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in model.CreateCustomer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Bob", in.Name)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"name":"Bob","email":"b@x.io","phone":"2","status":"Lead"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second).CreateCustomer(context.Background(),
		model.CreateCustomer{Name: "Bob", Email: "b@x.io", Phone: "2"})
	require.NoError(t, err)
	assert.Equal(t, 7, c.ID)
	assert.Equal(t, model.StatusLead, c.Status)
}

func TestUpdateStatusPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/customers/3/status", r.URL.Path)
		var in model.UpdateStatus
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, model.StatusInactive, in.Status)
		_, _ = w.Write([]byte(`{"id":3,"name":"C","email":"c@x.io","phone":"3","status":"Inactive"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second).UpdateStatus(context.Background(), 3, model.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, c.Status)
}

func TestDeleteNotFoundReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Customer not found"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).DeleteCustomer(context.Background(), 9)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Customer not found", apiErr.Message)
}

func TestAPIErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).ListCustomers(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.Equal(t, "crm api returned status 502: Bad Gateway", err.Error())
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL, time.Second).ListCustomers(context.Background())
	assert.Error(t, err)
}
