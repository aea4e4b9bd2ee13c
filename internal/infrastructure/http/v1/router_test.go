package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"stocktake/internal/core/id"
	"stocktake/internal/domain/auth"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/domain/stocktake/stocktaketest"
	"stocktake/internal/infrastructure/http/v1/handlers"
	"stocktake/pkg/logger"
)

type testAPI struct {
	t        *testing.T
	store    *stocktaketest.Store
	router   http.Handler
	branchID id.ID
}

func newTestAPI(t *testing.T, mutate ...func(*RouterConfig)) *testAPI {
	t.Helper()

	store := stocktaketest.NewStore()
	assignments := stocktake.NewAssignmentService(store.Assignments(), store.Branches(), store)

	cfg := RouterConfig{
		Logger: logger.Default(),
		Services: Services{
			Assignments: assignments,
			Recorder: stocktake.NewCountRecorder(
				store.Assignments(),
				store.Counts(),
				stocktake.NewPricingLookup(store.Prices()),
			),
			Finalizer: stocktake.NewFinalizer(stocktake.FinalizerConfig{
				TxManager:   store,
				Assignments: assignments,
				Counts:      store.Counts(),
				Summaries:   store.Summaries(),
				Events:      store.Publisher(),
			}),
		},
		Health: handlers.NewHealthHandler(nil, nil),
	}
	for _, m := range mutate {
		m(&cfg)
	}

	return &testAPI{
		t:        t,
		store:    store,
		router:   NewRouter(cfg),
		branchID: store.AddBranch("Downtown"),
	}
}

func (a *testAPI) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page       int   `json:"page"`
		PageSize   int   `json:"pageSize"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (a *testAPI) createAssignment(month string) map[string]any {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/branch-assignments", map[string]any{
		"name":          "Count " + month,
		"branchId":      a.branchID,
		"assignedMonth": month,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var out map[string]any
	require.NoError(a.t, json.Unmarshal(decode(a.t, w).Data, &out))
	return out
}

func TestStocktakeFlow(t *testing.T) {
	api := newTestAPI(t)
	beverage := api.store.AddProduct("Cola", "Beverages", "10.00")
	snack := api.store.AddProduct("Chips", "Snacks", "5.00")

	assignment := api.createAssignment("2024-03")
	assert.Equal(t, "2024-03-01", assignment["assignedMonth"])
	assert.Equal(t, "not started", assignment["status"])
	assignmentID := assignment["id"].(string)

	w := api.do(http.MethodPost, "/api/stock-counts", map[string]any{
		"branchAssignmentId": assignmentID,
		"productId":          beverage,
		"quantity":           3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var count map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &count))
	assert.Equal(t, "30.00", count["stockValue"])

	w = api.do(http.MethodPut, "/api/branch-assignments/"+assignmentID+"/counts/"+snack.String(), map[string]any{
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/stocktake-summaries/finish", map[string]any{
		"branchAssignmentId": assignmentID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"grandTotal": "40.00",
		"totalsByCategory": [
			{"category": "Beverages", "totalValue": "30.00"},
			{"category": "Snacks", "totalValue": "10.00"}
		]
	}`, pick(t, decode(t, w).Data, "grandTotal", "totalsByCategory"))

	w = api.do(http.MethodGet, "/api/branch-assignments/"+assignmentID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "done"}`, pick(t, decode(t, w).Data, "status"))

	w = api.do(http.MethodGet, "/api/stocktake-summaries/"+assignmentID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"grandTotal": "40.00"}`, pick(t, decode(t, w).Data, "grandTotal"))
}

func TestRecordCount_Validation(t *testing.T) {
	api := newTestAPI(t)
	product := api.store.AddProduct("Cola", "Beverages", "10.00")
	assignmentID := api.createAssignment("2024-03")["id"]

	tests := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{
			name:     "negative quantity",
			body:     map[string]any{"branchAssignmentId": assignmentID, "productId": product, "quantity": -1},
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "non-numeric quantity",
			body:     `{"branchAssignmentId":"` + assignmentID.(string) + `","productId":"` + product.String() + `","quantity":"abc"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "fractional quantity",
			body:     map[string]any{"branchAssignmentId": assignmentID, "productId": product, "quantity": 1.5},
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "missing quantity",
			body:     map[string]any{"branchAssignmentId": assignmentID, "productId": product},
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "unknown assignment",
			body:     map[string]any{"branchAssignmentId": id.New(), "productId": product, "quantity": 1},
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "unknown product",
			body:     map[string]any{"branchAssignmentId": assignmentID, "productId": id.New(), "quantity": 1},
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPost, "/api/stock-counts", tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Equal(t, tt.wantErr, decode(t, w).Code)
		})
	}

	assert.Zero(t, api.store.CountRows())
}

func TestAssignmentStatusEdits(t *testing.T) {
	api := newTestAPI(t)
	assignmentID := api.createAssignment("2024-04")["id"].(string)
	path := "/api/branch-assignments/" + assignmentID

	w := api.do(http.MethodPatch, path, map[string]any{"status": "in progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodPatch, path, map[string]any{"status": "finished"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPatch, path, map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPatch, path, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/stocktake-summaries/finish", map[string]any{"branchAssignmentId": assignmentID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPatch, path, map[string]any{"status": "in progress"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ASSIGNMENT_DONE", decode(t, w).Code)
}

func TestCreateAssignment_UpsertsPerBranchMonth(t *testing.T) {
	api := newTestAPI(t)

	first := api.createAssignment("2024-05")
	w := api.do(http.MethodPost, "/api/branch-assignments", map[string]any{
		"name":          "Renamed",
		"branchId":      api.branchID,
		"assignedMonth": "2024-05-17",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var second map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &second))
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "Renamed", second["name"])

	w = api.do(http.MethodPost, "/api/branch-assignments", map[string]any{
		"name":          "Bad",
		"branchId":      api.branchID,
		"assignedMonth": "May 2024",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAssignments_Envelope(t *testing.T) {
	api := newTestAPI(t)
	api.createAssignment("2024-01")
	api.createAssignment("2024-02")
	api.createAssignment("2024-03")

	w := api.do(http.MethodGet, "/api/branch-assignments?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 2, env.Pagination.PageSize)
	assert.EqualValues(t, 3, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)

	w = api.do(http.MethodGet, "/api/branch-assignments?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinish_UnknownAssignment(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/stocktake-summaries/finish", map[string]any{"branchAssignmentId": id.New()})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Code)

	w = api.do(http.MethodGet, "/api/stocktake-summaries/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAssignment_WithCounts(t *testing.T) {
	api := newTestAPI(t)
	product := api.store.AddProduct("Cola", "Beverages", "1.00")
	assignmentID := api.createAssignment("2024-06")["id"].(string)

	w := api.do(http.MethodPut, "/api/branch-assignments/"+assignmentID+"/counts/"+product.String(), map[string]any{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodDelete, "/api/branch-assignments/"+assignmentID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "REFERENCE_IN_USE", decode(t, w).Code)
}

func TestTraceHeaders(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/health/live", nil, "X-Request-ID", "req-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	api := newTestAPI(t, func(cfg *RouterConfig) {
		cfg.JWTValidator = jwtSvc
	})

	w := api.do(http.MethodGet, "/api/branch-assignments", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, w).Code)

	token, _, err := jwtSvc.GenerateAccessToken("op-1", "op@example.com", []string{auth.RoleOperator})
	require.NoError(t, err)

	w = api.do(http.MethodGet, "/api/branch-assignments", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// health stays public
	w = api.do(http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	api := newTestAPI(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 2})
	})

	for i := 0; i < 2; i++ {
		w := api.do(http.MethodGet, "/api/branch-assignments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := api.do(http.MethodGet, "/api/branch-assignments", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, w).Code)
}

// pick re-encodes only the named keys of a JSON object.
func pick(t *testing.T, raw json.RawMessage, keys ...string) string {
	t.Helper()

	var all map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &all))

	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		out[k] = all[k]
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	return string(b)
}
