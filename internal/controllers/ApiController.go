package controllers

import (
	"errors"
	"net/http"
	"posterd/internal/ledger"
	"posterd/internal/models"
	"posterd/internal/providers"
	"posterd/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const templatesCacheKey = "templates"

type ApiController struct {
	logger  providers.Logger
	service services.PosterServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.PosterServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

// serveFromCacheOrCompute answers from the entry under lookupKey or computes
// the result and stores it under the key compute returns. Errors are never
// cached.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, lookupKey string, compute func() (result any, storeKey string, err error)) {
	if data, ok := ac.cache.Get(lookupKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, storeKey, err := compute()
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "No templates found for given user ID")
			return
		}
		ac.logger.Errorf(providers.TypeGet, "Lookup failed: %s", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(storeKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// generatePayload tracks presence of userId, an empty id is a valid key.
type generatePayload struct {
	models.GenerateRequest
	UserID *string `json:"userId"`
}

func (ac *ApiController) GenerateTemplate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload generatePayload
	if err := dec.Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Bad Request")
		return
	}

	switch {
	case payload.UserID == nil:
		writeDetail(w, http.StatusUnprocessableEntity, "userId is required")
		return
	case payload.Parameters == nil:
		writeDetail(w, http.StatusUnprocessableEntity, "parameters is required")
		return
	}

	req := &payload.GenerateRequest
	req.UserID = *payload.UserID

	v := validate.Struct(req)
	if !v.Validate() {
		writeDetail(w, http.StatusUnprocessableEntity, v.Errors.One())
		return
	}

	resp, err := ac.service.Generate(r.Context(), req)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Generation for user %s failed: %s", req.UserID, err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetTemplateURLs looks the list up under the user's current length and
// stores a computed body under the length it actually holds.
func (ac *ApiController) GetTemplateURLs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("userId") {
		writeDetail(w, http.StatusUnprocessableEntity, "userId is required")
		return
	}
	userID := query.Get("userId")

	lookupKey := services.URLsCacheKey(userID, ac.service.URLCount(userID))
	ac.serveFromCacheOrCompute(w, lookupKey, func() (any, string, error) {
		urls, err := ac.service.ListURLs(userID)
		if err != nil {
			return nil, "", err
		}
		return models.UserURLsResponse{UserID: userID, GeneratedURLs: urls}, services.URLsCacheKey(userID, len(urls)), nil
	})
}

func (ac *ApiController) GetTemplates(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, templatesCacheKey, func() (any, string, error) {
		return ac.service.Templates(), templatesCacheKey, nil
	})
}
