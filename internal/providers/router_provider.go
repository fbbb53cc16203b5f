package providers

import (
	"net/http"
	"posterd/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) handle(method, url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  method,
		Url:     url,
		Handler: methodHandler(method, handler),
	})
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.handle(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.handle(http.MethodPost, url, handler)
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

var methodNotAllowedBody = []byte(`{"detail":"Method Not Allowed"}`)

// methodHandler answers 405 with the API error shape for any other method.
func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write(methodNotAllowedBody)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

// routePatterns lists the registered urls, used to bound metric labels.
func routePatterns(router RouterProviderInterface) map[string]struct{} {
	patterns := make(map[string]struct{})
	for _, route := range router.GetRoutes() {
		patterns[route.Url] = struct{}{}
	}
	return patterns
}
