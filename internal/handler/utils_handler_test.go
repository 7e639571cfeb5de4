package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimlens/internal/handler"
)

func utilsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewUtilsHandler()
	r.POST("/parse-total", h.ParseTotal)
	r.POST("/sum-non-payables", h.SumNonPayables)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseTotalEndpoint(t *testing.T) {
	w := postJSON(t, utilsRouter(), "/parse-total", gin.H{"text": "Room Rent 8000\nNet Payable: 45,000.50"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Found     bool    `json:"found"`
			Total     float64 `json:"total"`
			Formatted string  `json:"formatted"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Found)
	assert.InDelta(t, 45000.50, resp.Data.Total, 0.001)
	assert.Equal(t, "₹45,000.50", resp.Data.Formatted)
}

func TestParseTotalEndpoint_MissingText(t *testing.T) {
	w := postJSON(t, utilsRouter(), "/parse-total", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSumNonPayablesEndpoint(t *testing.T) {
	w := postJSON(t, utilsRouter(), "/sum-non-payables", gin.H{
		"text":     "Gloves 2000\nRegistration 500",
		"keywords": []string{"gloves", "registration"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Sum  float64 `json:"sum"`
			Hits []struct {
				Keyword string  `json:"keyword"`
				Amount  float64 `json:"amount"`
			} `json:"hits"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2500, resp.Data.Sum, 0.001)
	assert.Len(t, resp.Data.Hits, 2)
}
