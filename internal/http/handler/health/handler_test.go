package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandler(t *testing.T) {
	res := httptest.NewRecorder()

	NewHandler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if e, g := http.StatusOK, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}

	if e, g := "ok", res.Body.String(); e != g {
		t.Errorf("res.Body: expected %s, got %s", e, g)
	}
}
