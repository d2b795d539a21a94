package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pinkauto/internal/types"
)

type stubParser struct {
	id  types.ID
	err error
}

func (s stubParser) ParseToken(string) (types.ID, error) {
	return s.id, s.err
}

func request(parser TokenParser, header string) (*httptest.ResponseRecorder, types.ID) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got types.ID
	r.GET("/", Auth(parser), func(c *gin.Context) {
		got = RiderID(c)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w, got
}

func TestAuth_ValidToken(t *testing.T) {
	w, got := request(stubParser{id: "rider-1"}, "Bearer sometoken")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got != "rider-1" {
		t.Errorf("rider id = %s, want rider-1", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	w, _ := request(stubParser{id: "rider-1"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_BadScheme(t *testing.T) {
	w, _ := request(stubParser{id: "rider-1"}, "Basic abc")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	w, _ := request(stubParser{err: errors.New("expired")}, "Bearer bad")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
