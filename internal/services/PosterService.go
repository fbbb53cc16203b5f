package services

import (
	"context"
	"errors"
	"posterd/internal/catalog"
	"posterd/internal/gateway"
	"posterd/internal/ledger"
	"posterd/internal/models"
	"posterd/internal/providers"
	"strconv"

	"github.com/oklog/ulid/v2"
)

const StatusSuccess = "success"

var ErrNoURL = errors.New("template generation failed")

type PosterServiceInterface interface {
	Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error)
	ListURLs(userID string) ([]string, error)
	URLCount(userID string) int
	Templates() []models.TemplateInfo
	Users() int
}

type PosterService struct {
	gateway gateway.GatewayInterface
	catalog catalog.CatalogInterface
	ledger  ledger.LedgerInterface
	cache   providers.CacheProviderInterface
	logger  providers.Logger
}

func NewPosterService(gw gateway.GatewayInterface, cat catalog.CatalogInterface, store ledger.LedgerInterface, cache providers.CacheProviderInterface, logger providers.Logger) PosterServiceInterface {
	return &PosterService{
		gateway: gw,
		catalog: cat,
		ledger:  store,
		cache:   cache,
		logger:  logger,
	}
}

// URLsCacheKey is the cache key of a user's serialized URL list of the given
// length. Lists are append-only, so an entry never goes stale.
func URLsCacheKey(userID string, count int) string {
	return "urls:" + strconv.Itoa(count) + ":" + userID
}

// Generate renders the requested template and records the URL for the user.
// The ledger is left untouched when rendering fails or yields no URL.
func (ps *PosterService) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	id := ulid.Make().String()
	ps.logger.Infof(providers.TypeRender, "[%s] generate user=%s version=%d", id, req.UserID, req.TemplateVersion)

	result, err := ps.gateway.Render(ctx, req.TemplateVersion, req.Parameters)
	if err != nil {
		ps.logger.Errorf(providers.TypeRender, "[%s] render failed: %s", id, err)
		return nil, err
	}
	if result.URL == "" {
		ps.logger.Errorf(providers.TypeRender, "[%s] render response carries no url", id)
		return nil, ErrNoURL
	}

	n := ps.ledger.Append(req.UserID, result.URL)
	ps.cache.Del(URLsCacheKey(req.UserID, n-1))
	ps.logger.Infof(providers.TypeRender, "[%s] generated %s (mock=%t)", id, result.URL, result.MockGeneration)

	return &models.GenerateResponse{
		Status:          StatusSuccess,
		UserID:          req.UserID,
		TemplateVersion: req.TemplateVersion,
		GeneratedURL:    result.URL,
	}, nil
}

func (ps *PosterService) ListURLs(userID string) ([]string, error) {
	return ps.ledger.ListFor(userID)
}

func (ps *PosterService) URLCount(userID string) int {
	return ps.ledger.Len(userID)
}

func (ps *PosterService) Templates() []models.TemplateInfo {
	versions := ps.catalog.Versions()
	out := make([]models.TemplateInfo, 0, len(versions))
	for _, v := range versions {
		res := ps.catalog.Resolve(v)
		layers := make(map[string]map[string]string, len(res.Schema))
		for name, layer := range res.Schema {
			layers[name] = layer
		}
		out = append(out, models.TemplateInfo{
			Version:       res.Version,
			SchemaVersion: res.SchemaVersion,
			Layers:        layers,
		})
	}
	return out
}

func (ps *PosterService) Users() int {
	return ps.ledger.Users()
}
