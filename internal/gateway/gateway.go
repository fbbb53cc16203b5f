package gateway

import (
	"context"
	"fmt"
	"net/http"
	"posterd/internal/catalog"
	"posterd/internal/models"
	"posterd/internal/providers"
	"posterd/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
)

const (
	MockURL    = "https://example.com/poster-preview.jpg"
	StatusMock = "success"

	modeMock = "mock"
	modeLive = "live"
)

type GatewayInterface interface {
	Render(ctx context.Context, version int, layers map[string]any) (*models.RenderResult, error)
}

type Gateway struct {
	catalog  catalog.CatalogInterface
	client   *resty.Client
	endpoint string
	mock     bool
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

type renderPayload struct {
	Template string         `json:"template"`
	Layers   map[string]any `json:"layers"`
}

func NewGateway(conf *structures.Config, cat catalog.CatalogInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) GatewayInterface {
	client := resty.New().
		SetTimeout(conf.Provider.Timeout).
		SetRetryCount(conf.Provider.RetryCount).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	if conf.Provider.Mock {
		logger.Infof(providers.TypeApp, "Mock provider enabled, no render requests will leave the process")
	}

	return &Gateway{
		catalog:  cat,
		client:   client,
		endpoint: conf.Provider.Endpoint,
		mock:     conf.Provider.Mock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Render resolves the template version and renders it with the given layer
// data. The mock path performs no network call.
func (g *Gateway) Render(ctx context.Context, version int, layers map[string]any) (*models.RenderResult, error) {
	res := g.catalog.Resolve(version)
	if res.CredentialKey == "" || res.TemplateID == "" {
		g.metrics.IncRendersTotal(modeLive, "config_error")
		return nil, &ConfigurationError{
			Version:           res.Version,
			MissingCredential: res.CredentialKey == "",
			MissingTemplateID: res.TemplateID == "",
		}
	}

	g.logger.Infof(providers.TypeRender, "Rendering template version %d", res.Version)
	g.logger.Debugf(providers.TypeRender, "Using template ID: %s", res.TemplateID)

	if g.mock || res.Placeholder {
		g.logger.Infof(providers.TypeRender, "Mocking response for template version %d", res.Version)
		g.metrics.IncRendersTotal(modeMock, "success")
		return &models.RenderResult{
			URL:             MockURL,
			Status:          StatusMock,
			TemplateID:      res.TemplateID,
			TemplateVersion: res.Version,
			MockGeneration:  true,
		}, nil
	}

	if layers == nil {
		layers = map[string]any{}
	}

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+res.CredentialKey).
		SetBody(renderPayload{Template: res.TemplateID, Layers: layers}).
		Post(g.endpoint)
	g.metrics.ObserveRenderDuration(modeLive, time.Since(start))
	if err != nil {
		g.metrics.IncRendersTotal(modeLive, "transport_error")
		g.logger.Errorf(providers.TypeRender, "Error rendering template: %s", err)
		return nil, &TransportError{Err: err}
	}

	g.logger.Infof(providers.TypeRender, "Render provider status: %d", resp.StatusCode())
	if resp.StatusCode() != http.StatusOK {
		g.metrics.IncRendersTotal(modeLive, "upstream_error")
		upErr := &UpstreamError{StatusCode: resp.StatusCode(), Body: resp.String()}
		g.logger.Errorf(providers.TypeRender, "Error rendering template: %s", upErr)
		return nil, upErr
	}

	var raw map[string]any
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		g.metrics.IncRendersTotal(modeLive, "decode_error")
		return nil, fmt.Errorf("unable to decode render response: %w", err)
	}
	g.metrics.IncRendersTotal(modeLive, "success")

	result := &models.RenderResult{
		TemplateID:      res.TemplateID,
		TemplateVersion: res.Version,
		Raw:             raw,
	}
	if url, ok := raw["url"].(string); ok {
		result.URL = url
	}
	if status, ok := raw["status"].(string); ok {
		result.Status = status
	}
	return result, nil
}
