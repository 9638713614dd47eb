package expense_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fmorais/spendly/internal/expense"
	expenseHandler "github.com/fmorais/spendly/internal/http/expense"
)

func newTestServer(t *testing.T) (*expense.MockStore, *httptest.Server) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := expense.NewMockStore(ctrl)

	router := chi.NewRouter()
	router.Route("/expenses", expenseHandler.NewHandler(expense.NewService(store)).Routes)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return store, ts
}

func TestHandler_List_DateBoundsTakeRangePath(t *testing.T) {
	store, ts := newTestServer(t)

	store.EXPECT().
		RangeByDate(gomock.Any(), "2024-01-01", "2024-01-31").
		Return([]*expense.Expense{
			{ID: uuid.New(), Date: "2024-01-10", Amount: decimal.NewFromInt(100), Category: expense.CategoryBills, Description: "Rent"},
		}, nil)

	resp, err := http.Get(ts.URL + "/expenses?startDate=2024-01-01&endDate=2024-01-31")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Expenses []struct {
			Date     string  `json:"date"`
			Amount   float64 `json:"amount"`
			Category string  `json:"category"`
		} `json:"expenses"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Expenses, 1)
	assert.Equal(t, "2024-01-10", body.Expenses[0].Date)
	assert.InDelta(t, 100, body.Expenses[0].Amount, 0.001)
}

func TestHandler_List_AppliesFilterCriteria(t *testing.T) {
	store, ts := newTestServer(t)

	store.EXPECT().
		ScanAll(gomock.Any(), nil).
		Return([]*expense.Expense{
			{ID: uuid.New(), Date: "2024-01-10", Amount: decimal.NewFromInt(100), Category: expense.CategoryBills, Description: "Rent"},
			{ID: uuid.New(), Date: "2024-01-11", Amount: decimal.NewFromInt(20), Category: expense.CategoryFood, Description: "Groceries"},
		}, nil)

	resp, err := http.Get(ts.URL + "/expenses?search=groceries")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
}

func TestHandler_List_InvalidParams(t *testing.T) {
	type testCase struct {
		name  string
		query string
	}

	tests := []testCase{
		{name: "BadStartDate", query: "?startDate=01-01-2024"},
		{name: "UnknownCategory", query: "?category=Groceries"},
		{name: "UnknownCategoryInSet", query: "?categories=Food,Groceries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t)

			resp, err := http.Get(ts.URL + "/expenses" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandler_Create(t *testing.T) {
	store, ts := newTestServer(t)

	store.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		Return(nil)

	payload := `{"date":"2024-03-01","amount":12.5,"category":"Food","description":"Lunch"}`

	resp, err := http.Post(ts.URL+"/expenses", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID       uuid.UUID `json:"id"`
		Category string    `json:"category"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEqual(t, uuid.Nil, body.ID)
	assert.Equal(t, "Food", body.Category)
}

func TestHandler_Create_ValidationError(t *testing.T) {
	_, ts := newTestServer(t)

	// amount of zero violates the boundary; the store is never touched.
	payload := `{"date":"2024-03-01","amount":0,"category":"Food","description":"Lunch"}`

	resp, err := http.Post(ts.URL+"/expenses", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "amount")
}

func TestHandler_Get_NotFound(t *testing.T) {
	store, ts := newTestServer(t)

	id := uuid.New()
	store.EXPECT().Get(gomock.Any(), id).Return(nil, expense.ErrNotFound)

	resp, err := http.Get(ts.URL + "/expenses/" + id.String())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_List_StoreUnavailable(t *testing.T) {
	store, ts := newTestServer(t)

	store.EXPECT().
		ScanAll(gomock.Any(), nil).
		Return(nil, expense.ErrStoreUnavailable)

	resp, err := http.Get(ts.URL + "/expenses")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandler_Delete(t *testing.T) {
	store, ts := newTestServer(t)

	id := uuid.New()
	store.EXPECT().Delete(gomock.Any(), id).Return(true, nil)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/expenses/"+id.String(), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id, body.ID)
}

func TestHandler_Update_FullReplacement(t *testing.T) {
	store, ts := newTestServer(t)

	id := uuid.New()
	existing := &expense.Expense{
		ID:          id,
		Date:        "2024-01-10",
		Amount:      decimal.NewFromInt(100),
		Category:    expense.CategoryBills,
		Description: "Electricity",
	}

	store.EXPECT().Get(gomock.Any(), id).Return(existing, nil)
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	payload := `{"date":"2024-02-01","amount":120,"category":"Other","description":"Water"}`

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/expenses/"+id.String(), strings.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Date     string `json:"date"`
		Category string `json:"category"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2024-02-01", body.Date)
	assert.Equal(t, "Other", body.Category)
}
