package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanbook/pkg/models"
	"loanbook/pkg/store"
)

func setupTestServer(t *testing.T) (*Server, *mux.Router) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	server := NewServer(store.NewMemory(), logger)
	router, err := server.routes()
	require.NoError(t, err)
	return server, router
}

func TestAPI_Home(t *testing.T) {
	_, router := setupTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Welcome to the Loan Application API", rr.Body.String())
}

func TestAPI_CreatePaymentAndReadBack(t *testing.T) {
	server, router := setupTestServer(t)

	loan, err := server.ledger.CreateLoan("Tom's Loan", decimal.NewFromFloat(5.0), decimal.NewFromInt(10000), models.NewDate(2025, time.March, 1))
	require.NoError(t, err)

	// Record a payment over the REST path.
	body, _ := json.Marshal(map[string]interface{}{
		"loan_id":      loan.ID.String(),
		"payment_date": "2025-03-10",
		"amount":       4000,
	})
	req := httptest.NewRequest("POST", "/api/payments", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

	var payment models.Payment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payment))
	assert.Equal(t, loan.ID, payment.LoanID)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(4000)))

	// The enriched view must reflect it immediately.
	req = httptest.NewRequest("GET", "/api/loans/"+loan.ID.String(), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var view models.LoanView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, models.StatusLatePartiallyPaid, view.PaymentStatus)
	assert.True(t, view.RemainingBalance.Equal(decimal.NewFromInt(6000)))
	assert.Len(t, view.Payments, 1)
}

func TestAPI_CreatePaymentErrors(t *testing.T) {
	server, router := setupTestServer(t)

	loan, err := server.ledger.CreateLoan("Loan", decimal.NewFromFloat(5.0), decimal.NewFromInt(1000), models.NewDate(2025, time.March, 1))
	require.NoError(t, err)

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{"invalid loan id", map[string]interface{}{"loan_id": "nope", "payment_date": "2025-03-02", "amount": 100}, http.StatusBadRequest},
		{"unknown loan", map[string]interface{}{"loan_id": "11111111-2222-3333-4444-555555555555", "payment_date": "2025-03-02", "amount": 100}, http.StatusNotFound},
		{"bad date", map[string]interface{}{"loan_id": loan.ID.String(), "payment_date": "02/03/2025", "amount": 100}, http.StatusBadRequest},
		{"non-positive amount", map[string]interface{}{"loan_id": loan.ID.String(), "payment_date": "2025-03-02", "amount": 0}, http.StatusBadRequest},
		{"exceeds balance", map[string]interface{}{"loan_id": loan.ID.String(), "payment_date": "2025-03-02", "amount": 5000}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/api/payments", bytes.NewBuffer(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantCode, rr.Code, "body: %s", rr.Body.String())
		})
	}
}

func TestAPI_ListLoans(t *testing.T) {
	server, router := setupTestServer(t)

	_, err := server.ledger.CreateLoan("A", decimal.NewFromFloat(5.0), decimal.NewFromInt(1000), models.NewDate(2025, time.March, 1))
	require.NoError(t, err)
	_, err = server.ledger.CreateLoan("B", decimal.NewFromFloat(3.0), decimal.NewFromInt(2000), models.NewDate(2025, time.April, 1))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/loans", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var views []models.LoanView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, models.StatusUnpaid, v.PaymentStatus)
	}
}

// The /graphql endpoint and the REST path must observe the same data.
func TestAPI_GraphQLEndpoint(t *testing.T) {
	server, router := setupTestServer(t)

	loan, err := server.ledger.CreateLoan("Tom's Loan", decimal.NewFromFloat(5.0), decimal.NewFromInt(10000), models.NewDate(2025, time.March, 1))
	require.NoError(t, err)
	_, err = server.ledger.RecordPayment(loan.ID, models.NewDate(2025, time.March, 4), decimal.NewFromInt(10000))
	require.NoError(t, err)

	query := map[string]string{"query": `query { loans { name payment_status remaining_balance } }`}
	body, _ := json.Marshal(query)
	req := httptest.NewRequest("POST", "/graphql", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data struct {
			Loans []struct {
				Name             string  `json:"name"`
				PaymentStatus    string  `json:"payment_status"`
				RemainingBalance float64 `json:"remaining_balance"`
			} `json:"loans"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Loans, 1)
	assert.Equal(t, "On Time", resp.Data.Loans[0].PaymentStatus)
	assert.Equal(t, 0.0, resp.Data.Loans[0].RemainingBalance)
}
