package models

// GenerateRequest is the body of POST /generate-template/. UserID may be
// empty but must be present, Parameters may be an empty object. Presence is
// checked by the controller since an empty value passes JSON decoding.
type GenerateRequest struct {
	TemplateVersion int            `json:"templateVersion" validate:"required|min:1|max:3"`
	UserID          string         `json:"userId"`
	Parameters      map[string]any `json:"parameters"`
}

type GenerateResponse struct {
	Status          string `json:"status"`
	UserID          string `json:"userId"`
	TemplateVersion int    `json:"templateVersion"`
	GeneratedURL    string `json:"generatedUrl"`
}

type UserURLsResponse struct {
	UserID        string   `json:"userId"`
	GeneratedURLs []string `json:"generatedUrls"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
