package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ---- helpers shared by the handler tests ----

func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("tokenId", "tok-"+userID)
		c.Set("tokenExpiresAt", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		c.Next()
	}
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	switch b := body.(type) {
	case nil:
	case string:
		req, _ = http.NewRequest(method, url, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		raw, _ := json.Marshal(b)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(raw)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}
