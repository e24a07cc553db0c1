// Package api - HTTP handlers for quoting
// Handlers wrap the dispatcher - they contain NO pricing logic.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/engine"
	"window-quote/core/types"
)

// MaxBatchSize bounds the number of quotes in one batch request
const MaxBatchSize = 500

// Handler handles quote requests
type Handler struct {
	dispatcher       *engine.Dispatcher
	batchConcurrency int
}

// NewHandler creates a new handler
func NewHandler(dispatcher *engine.Dispatcher, batchConcurrency int) *Handler {
	return &Handler{
		dispatcher:       dispatcher,
		batchConcurrency: batchConcurrency,
	}
}

// HandleQuote handles POST /quotes/:category
func (h *Handler) HandleQuote(c *gin.Context) {
	category := types.Category(c.Param("category"))

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, http.StatusBadRequest, &ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	result, err := h.dispatcher.Dispatch(category, req.Query(category))
	if err != nil {
		detail := errorDetail(err)
		h.writeError(c, statusFor(err), detail)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		RequestID: c.GetString(requestIDKey),
		Timestamp: time.Now().UTC(),
		Status:    StatusSuccess,
		Result:    result,
	})
}

// HandleBatch handles POST /quotes/batch. Individual quote failures are
// reported per item; the request itself succeeds.
func (h *Handler) HandleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, http.StatusBadRequest, &ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()})
		return
	}
	if len(req.Quotes) == 0 {
		h.writeError(c, http.StatusBadRequest, &ErrorDetail{Code: "INVALID_REQUEST", Message: "quotes must not be empty"})
		return
	}
	if len(req.Quotes) > MaxBatchSize {
		h.writeError(c, http.StatusBadRequest, &ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: fmt.Sprintf("at most %d quotes per batch, got %d", MaxBatchSize, len(req.Quotes)),
		})
		return
	}

	items, err := h.dispatcher.Batch(c.Request.Context(), req.Quotes, h.batchConcurrency)
	if err != nil {
		h.writeError(c, http.StatusServiceUnavailable, &ErrorDetail{Code: "CANCELLED", Message: err.Error()})
		return
	}

	resp := BatchResponse{
		RequestID: c.GetString(requestIDKey),
		Timestamp: time.Now().UTC(),
		Status:    StatusSuccess,
		Items:     make([]BatchItem, len(items)),
		Failed:    engine.Failed(items),
	}
	for i, it := range items {
		resp.Items[i] = BatchItem{Index: i, Result: it.Result}
		if it.Err != nil {
			resp.Items[i].Error = errorDetail(it.Err)
		}
	}
	if resp.Failed > 0 {
		resp.Status = StatusPartial
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCategories handles GET /categories
func (h *Handler) HandleCategories(c *gin.Context) {
	categories := h.dispatcher.Categories()
	out := make([]CategoryInfo, len(categories))
	for i, cat := range categories {
		keys := catalog.KeyNames(cat)
		if keys == nil {
			keys = []string{}
		}
		out[i] = CategoryInfo{
			ID:          cat,
			Name:        cat.DisplayName(),
			LengthBased: cat.LengthBased(),
			Keys:        keys,
		}
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// HandleOptions handles GET /categories/:category/options/:key. Query
// parameters filter on other keys, so a form can offer only combinations
// present in the catalog.
func (h *Handler) HandleOptions(c *gin.Context) {
	category := types.Category(c.Param("category"))
	if !category.IsValid() {
		h.writeError(c, http.StatusNotFound, &ErrorDetail{
			Code:     string(apperrors.TypeNotFound),
			Message:  "unknown category",
			Category: string(category),
		})
		return
	}

	filters := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			filters[k] = v[0]
		}
	}
	options := h.dispatcher.Catalog().Options(category, c.Param("key"), filters)
	if options == nil {
		options = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

func (h *Handler) writeError(c *gin.Context, status int, detail *ErrorDetail) {
	c.JSON(status, QuoteResponse{
		RequestID: c.GetString(requestIDKey),
		Timestamp: time.Now().UTC(),
		Status:    StatusError,
		Error:     detail,
	})
}

// errorDetail converts a quote error to its wire form
func errorDetail(err error) *ErrorDetail {
	e, ok := apperrors.As(err)
	if !ok {
		return &ErrorDetail{Code: string(apperrors.TypeInternal), Message: err.Error()}
	}
	d := &ErrorDetail{
		Code:     string(e.Type),
		Message:  e.Message,
		Category: e.Category(),
		Keys:     e.Keys(),
	}
	d.Key, _ = e.Context[apperrors.ContextKey].(string)
	d.Value, _ = e.Context[apperrors.ContextValue].(string)
	return d
}

// statusFor maps a quote error type to an HTTP status
func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	case apperrors.TypeInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
