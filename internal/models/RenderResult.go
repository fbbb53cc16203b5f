package models

// RenderResult is the normalized outcome of one render call. Raw holds the
// provider's response body as decoded on the live path.
type RenderResult struct {
	URL             string         `json:"url,omitempty"`
	Status          string         `json:"status"`
	TemplateID      string         `json:"templateId"`
	TemplateVersion int            `json:"templateVersion"`
	MockGeneration  bool           `json:"mockGeneration"`
	Raw             map[string]any `json:"-"`
}

type TemplateInfo struct {
	Version       int                          `json:"templateVersion"`
	SchemaVersion int                          `json:"schemaVersion"`
	Layers        map[string]map[string]string `json:"layers"`
}
