package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasavn/dukaan/internal/domain"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func Test_errorResponse_StatusMapping(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, nil)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		explanation string
	}{
		{
			name:        "invalid",
			err:         domain.Invalid("invoice.create", "quantity must be positive"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    domain.EINVALID,
			explanation: "validation failures map to 400",
		},
		{
			name:        "not found",
			err:         domain.NotFound("item.get", "Item", "42"),
			wantStatus:  http.StatusNotFound,
			wantCode:    domain.ENOTFOUND,
			explanation: "missing resources map to 404",
		},
		{
			name:        "conflict",
			err:         domain.Conflict("invoice.create", "duplicate invoice number"),
			wantStatus:  http.StatusConflict,
			wantCode:    domain.ECONFLICT,
			explanation: "uniqueness violations map to 409",
		},
		{
			name:        "internal",
			err:         domain.Internal(assert.AnError, "inventory.add", "failed to add stock"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    domain.EINTERNAL,
			explanation: "unclassified failures map to 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/", "")

			err := h.errorResponse(c, tt.err)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, rec.Code, tt.explanation)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func Test_errorResponse_InsufficientStockDetail(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, nil)
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/transfers", "")

	err := h.errorResponse(c, &domain.StockError{
		ItemID:    7,
		ItemName:  "Basmati Rice 5kg",
		Available: decimal.RequireFromString("3.50"),
		Requested: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "insufficient_inventory", body["error"])

	detail, ok := body["detail"].(map[string]any)
	require.True(t, ok, "response carries a structured detail object")
	assert.Equal(t, "Basmati Rice 5kg", detail["item_name"])
	assert.Equal(t, "6.5", detail["shortage"])
}

func Test_errorResponse_BatchValidation(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, nil)
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/transfers/batch", "")

	err := h.errorResponse(c, &domain.BatchValidationError{
		Lines: []domain.BatchLineError{
			{ItemIndex: 1, ItemID: 7, ItemName: "Basmati Rice 5kg", Error: "Insufficient stock"},
		},
		TotalItems: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "batch_validation_failed", body["error"])
	assert.EqualValues(t, 3, body["total_items"])
}

func Test_bind_ReportsFieldFailures(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, nil)

	tests := []struct {
		name        string
		body        string
		wantField   string
		explanation string
	}{
		{
			name:        "missing name",
			body:        `{"state": "Karnataka", "gstin": "29ABCDE1234F1Z5", "owner_id": 1}`,
			wantField:   "Name",
			explanation: "required fields are reported by name",
		},
		{
			name:        "short gstin",
			body:        `{"name": "Sharma Traders", "state": "Karnataka", "gstin": "29ABC", "owner_id": 1}`,
			wantField:   "GSTIN",
			explanation: "a GSTIN is always 15 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/api/v1/companies", tt.body)

			var req CreateCompanyRequest
			err := h.bind(c, &req)
			require.Error(t, err, tt.explanation)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantField)
		})
	}
}
