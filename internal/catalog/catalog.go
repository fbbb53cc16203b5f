package catalog

import (
	"posterd/internal/providers"
	"posterd/internal/structures"
	"strings"
)

const (
	DefaultVersion = 0
	MaxVersion     = 3

	PlaceholderKeyMarker      = "your_templated_api_key_here"
	PlaceholderTemplateMarker = "your_template_id_here"
)

// Resolution is everything needed to render one template version.
// SchemaVersion differs from Version when a version borrows another
// version's layout (version 3 renders with the version 0 layout).
type Resolution struct {
	Version       int
	SchemaVersion int
	CredentialKey string
	TemplateID    string
	Schema        Schema
	Placeholder   bool
}

type CatalogInterface interface {
	Resolve(version int) Resolution
	Versions() []int
}

type Catalog struct {
	entries [MaxVersion + 1]Resolution
}

// NormalizeVersion clamps unknown versions to DefaultVersion.
func NormalizeVersion(version int) int {
	if version < DefaultVersion || version > MaxVersion {
		return DefaultVersion
	}
	return version
}

func NewCatalog(conf *structures.Config, logger providers.Logger) CatalogInterface {
	p := conf.Provider
	ids := [MaxVersion + 1]string{p.TemplateIDs.V0, p.TemplateIDs.V1, p.TemplateIDs.V2, p.TemplateIDs.V3}
	schemas := [MaxVersion + 1]Schema{schemaV0, schemaV1, schemaV2, schemaV0}
	schemaVersions := [MaxVersion + 1]int{0, 1, 2, 0}

	c := &Catalog{}
	for v := DefaultVersion; v <= MaxVersion; v++ {
		key := p.PrimaryKey
		if v == 0 {
			key = p.SecondaryKey
		}
		c.entries[v] = Resolution{
			Version:       v,
			SchemaVersion: schemaVersions[v],
			CredentialKey: key,
			TemplateID:    ids[v],
			Schema:        schemas[v],
			Placeholder:   isPlaceholder(key, ids[v]),
		}
		if c.entries[v].Placeholder {
			logger.Infof(providers.TypeApp, "Template version %d uses placeholder credentials, rendering will be mocked", v)
		}
	}
	logger.Warnf(providers.TypeApp, "Template version %d renders with the layer schema of version %d", MaxVersion, c.entries[MaxVersion].SchemaVersion)

	return c
}

func isPlaceholder(key, templateID string) bool {
	return strings.Contains(key, PlaceholderKeyMarker) || strings.Contains(templateID, PlaceholderTemplateMarker)
}

// Resolve is a pure lookup. The returned schema is a copy.
func (c *Catalog) Resolve(version int) Resolution {
	r := c.entries[NormalizeVersion(version)]
	r.Schema = r.Schema.clone()
	return r
}

func (c *Catalog) Versions() []int {
	versions := make([]int, 0, len(c.entries))
	for v := range c.entries {
		versions = append(versions, v)
	}
	return versions
}
