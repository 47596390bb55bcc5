package ndp

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest declares resources to ingest: a forest of assets and the time
// series attached to them, in one YAML document.
type Manifest struct {
	Version    int                `json:"version"              yaml:"version"`
	Assets     []ManifestAsset    `json:"assets,omitempty"     yaml:"assets,omitempty"`
	TimeSeries []TimeSeriesCreate `json:"timeSeries,omitempty" yaml:"timeSeries,omitempty"`
}

// ManifestAsset is one asset node; children nest under their parent.
type ManifestAsset struct {
	ExternalID  string          `json:"externalId"            yaml:"externalId"`
	Name        string          `json:"name"                  yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string          `json:"source,omitempty"      yaml:"source,omitempty"`
	Labels      []string        `json:"labels,omitempty"      yaml:"labels,omitempty"`
	Metadata    Metadata        `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
	Children    []ManifestAsset `json:"children,omitempty"    yaml:"children,omitempty"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest

	err := yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	return &manifest, nil
}

// FlattenAssets converts the nested asset forest to creation requests with
// parent references, in parent-before-child order.
func (m *Manifest) FlattenAssets() []AssetCreate {
	var out []AssetCreate

	var walk func(node ManifestAsset, parentExternalID string)

	walk = func(node ManifestAsset, parentExternalID string) {
		out = append(out, AssetCreate{
			ExternalID:       node.ExternalID,
			Name:             node.Name,
			Description:      node.Description,
			ParentExternalID: parentExternalID,
			Source:           node.Source,
			Labels:           node.Labels,
			Metadata:         node.Metadata,
		})

		for _, child := range node.Children {
			walk(child, node.ExternalID)
		}
	}

	for _, root := range m.Assets {
		walk(root, "")
	}

	return out
}

// ManifestOutcome reports what a manifest application created.
type ManifestOutcome struct {
	Assets     []Asset
	TimeSeries []TimeSeries
}

// ApplyManifest creates the manifest's assets (level by level, parents
// first) and then its time series. Partial failures surface as the
// underlying *PartialError values; assets already created stay created.
func ApplyManifest(ctx context.Context, client Client, manifest *Manifest) (*ManifestOutcome, error) {
	outcome := &ManifestOutcome{}

	assets := manifest.FlattenAssets()
	if len(assets) > 0 {
		created, err := client.Assets().CreateHierarchy(ctx, assets)
		outcome.Assets = created

		if err != nil {
			return outcome, fmt.Errorf("applying manifest assets: %w", err)
		}
	}

	if len(manifest.TimeSeries) > 0 {
		created, err := client.TimeSeries().Create(ctx, manifest.TimeSeries)
		outcome.TimeSeries = created

		if err != nil {
			return outcome, fmt.Errorf("applying manifest time series: %w", err)
		}
	}

	return outcome, nil
}
