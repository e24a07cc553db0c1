package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"window-quote/internal/logging"

	"window-quote/adapters/catalogfile"
	"window-quote/core/engine"
	"window-quote/core/tariff"
)

func init() {
	logging.UseNop()
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalogfile.Load(filepath.Join("..", "configs", "catalog.yaml"))
	require.NoError(t, err)
	tf, err := tariff.Load(filepath.Join("..", "configs", "tariff.hcl"))
	require.NoError(t, err)
	d, err := engine.New(cat, tf)
	require.NoError(t, err)
	return NewServer("test", d, 4)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

type wireResult struct {
	Category   string `json:"category"`
	Total      string `json:"total"`
	Currency   string `json:"currency"`
	Components []struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	} `json:"components"`
}

type wireQuoteResponse struct {
	RequestID string       `json:"request_id"`
	Status    string       `json:"status"`
	Result    *wireResult  `json:"result"`
	Error     *ErrorDetail `json:"error"`
}

func TestQuoteOSB(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/quotes/osb", `{"width": 2.0, "height": 1.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp wireQuoteResponse
	decode(t, rec, &resp)
	assert.Equal(t, StatusSuccess, resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "3290", resp.Result.Total)
	assert.Equal(t, "UAH", resp.Result.Currency)
	assert.Len(t, resp.Result.Components, 5)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, rec.Header().Get(RequestIDHeader))
}

func TestQuoteKeepsCallerRequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/quotes/osb", bytes.NewReader([]byte(`{"width": 1, "height": 1}`)))
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var resp wireQuoteResponse
	decode(t, rec, &resp)
	assert.Equal(t, "req-42", resp.RequestID)
}

func TestQuoteErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
		key    string
	}{
		{"unknown category", "/quotes/shutters", `{"width": 1, "height": 1}`, http.StatusNotFound, "NOT_FOUND", "category"},
		{"unknown color", "/quotes/horizontal_blinds",
			`{"attributes": {"blind_type": "Стандарт", "color": "Фіолетовий"}, "width": 1, "height": 1}`,
			http.StatusNotFound, "NOT_FOUND", "color"},
		{"zero width", "/quotes/osb", `{"width": 0, "height": 1}`, http.StatusBadRequest, "INVALID", "width"},
		{"malformed body", "/quotes/osb", `{"width": `, http.StatusBadRequest, "INVALID_REQUEST", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp wireQuoteResponse
			decode(t, rec, &resp)
			assert.Equal(t, StatusError, resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.key, resp.Error.Key)
		})
	}
}

func TestQuoteNotFoundCarriesAttemptedValue(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/quotes/drip", `{"attributes": {"width_mm": "175"}, "length": 2}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp wireQuoteResponse
	decode(t, rec, &resp)
	assert.Equal(t, "drip", resp.Error.Category)
	assert.Equal(t, "175", resp.Error.Value)
	assert.Equal(t, map[string]string{"width_mm": "175"}, resp.Error.Keys)
}

func TestBatch(t *testing.T) {
	s := newTestServer(t)

	body := `{"quotes": [
		{"category": "osb", "width": 2.0, "height": 1.5},
		{"category": "drip", "attributes": {"width_mm": "150"}, "length": 1},
		{"category": "drip", "attributes": {"width_mm": "175"}, "length": 1}
	]}`
	rec := do(t, s, http.MethodPost, "/quotes/batch", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Failed int    `json:"failed"`
		Items  []struct {
			Index  int          `json:"index"`
			Result *wireResult  `json:"result"`
			Error  *ErrorDetail `json:"error"`
		} `json:"items"`
	}
	decode(t, rec, &resp)

	assert.Equal(t, StatusPartial, resp.Status)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "3290", resp.Items[0].Result.Total)
	// 2.4 USD × 43.0 + 150 + 500 + 400
	assert.Equal(t, "1153.2", resp.Items[1].Result.Total)
	assert.Nil(t, resp.Items[2].Result)
	assert.Equal(t, "NOT_FOUND", resp.Items[2].Error.Code)
	for i, it := range resp.Items {
		assert.Equal(t, i, it.Index)
	}
}

func TestBatchEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/quotes/batch", `{"quotes": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories []CategoryInfo `json:"categories"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Categories, 8)
	assert.Equal(t, "horizontal_blinds", string(resp.Categories[0].ID))
	assert.Equal(t, []string{"blind_type", "color"}, resp.Categories[0].Keys)
	assert.Empty(t, resp.Categories[7].Keys)
	assert.True(t, resp.Categories[4].LengthBased)
}

func TestOptions(t *testing.T) {
	s := newTestServer(t)

	filter := url.Values{"system_type": {"Mini открытый"}}
	rec := do(t, s, http.MethodGet, "/categories/roller_blinds/options/fabric?"+filter.Encode(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Options []string `json:"options"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, []string{"Льон", "Блекаут"}, resp.Options)

	rec = do(t, s, http.MethodGet, "/categories/shutters/options/color", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decode(t, rec, &resp)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "test", resp["version"])
}
