package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_RecordsMethodAndUrl(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/get-template-urls/", dummyHandler())
	rp.Post("/generate-template/", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, "/get-template-urls/", routes[0].Url)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "/generate-template/", routes[1].Url)
}

func TestMethodHandler_CorrectMethod(t *testing.T) {
	handler := methodHandler(http.MethodGet, dummyHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/templates/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestMethodHandler_WrongMethod(t *testing.T) {
	tests := []struct {
		allowed, sent string
	}{
		{http.MethodGet, http.MethodPost},
		{http.MethodPost, http.MethodGet},
		{http.MethodPost, http.MethodPut},
	}
	for _, tt := range tests {
		t.Run(tt.allowed+"/"+tt.sent, func(t *testing.T) {
			handler := methodHandler(tt.allowed, dummyHandler())

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.sent, "/x", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Equal(t, tt.allowed, rr.Header().Get("Allow"))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"detail":"Method Not Allowed"}`, rr.Body.String())
		})
	}
}

func TestRoutePatterns(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a/", dummyHandler())
	rp.Post("/b/", dummyHandler())

	patterns := routePatterns(rp)
	assert.Len(t, patterns, 2)
	assert.Contains(t, patterns, "/a/")
	assert.Contains(t, patterns, "/b/")
}
