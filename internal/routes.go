package internal

import (
	"net/http"
	"posterd/internal/controllers"
	"posterd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/generate-template/", http.HandlerFunc(apiController.GenerateTemplate))
	routers.Get("/get-template-urls/", http.HandlerFunc(apiController.GetTemplateURLs))
	routers.Get("/templates/", http.HandlerFunc(apiController.GetTemplates))
	return routers
}
