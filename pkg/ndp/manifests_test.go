package ndp_test

import (
	"context"
	"testing"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
version: 1
assets:
  - externalId: plant
    name: Plant
    metadata:
      region: north
    children:
      - externalId: line-1
        name: Line 1
        children:
          - externalId: pump-1
            name: Pump 1
      - externalId: line-2
        name: Line 2
timeSeries:
  - externalId: pump-1:pressure
    name: Pump 1 pressure
    unit: bar
`

func TestParseManifest(t *testing.T) {
	manifest, err := ndp.ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	assert.Equal(t, 1, manifest.Version)
	require.Len(t, manifest.Assets, 1)
	assert.Equal(t, "plant", manifest.Assets[0].ExternalID)
	assert.Equal(t, "north", manifest.Assets[0].Metadata["region"])
	require.Len(t, manifest.Assets[0].Children, 2)

	require.Len(t, manifest.TimeSeries, 1)
	assert.Equal(t, "pump-1:pressure", manifest.TimeSeries[0].ExternalID)
	assert.Equal(t, "bar", manifest.TimeSeries[0].Unit)
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := ndp.ParseManifest([]byte("version: [unclosed"))
	require.Error(t, err)
}

func TestManifest_FlattenAssets(t *testing.T) {
	manifest, err := ndp.ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	flat := manifest.FlattenAssets()
	require.Len(t, flat, 4)

	byExternalID := map[string]ndp.AssetCreate{}
	for _, a := range flat {
		byExternalID[a.ExternalID] = a
	}

	assert.Equal(t, "", byExternalID["plant"].ParentExternalID)
	assert.Equal(t, "plant", byExternalID["line-1"].ParentExternalID)
	assert.Equal(t, "plant", byExternalID["line-2"].ParentExternalID)
	assert.Equal(t, "line-1", byExternalID["pump-1"].ParentExternalID)

	// Parents come before their children.
	assert.Equal(t, "plant", flat[0].ExternalID)

	levels, err := ndp.HierarchyLevels(flat)
	require.NoError(t, err)
	assert.Len(t, levels, 3)
}

type fakeAssetsClient struct {
	ndp.AssetsClient
	created []ndp.AssetCreate
}

func (c *fakeAssetsClient) CreateHierarchy(ctx context.Context, assets []ndp.AssetCreate) ([]ndp.Asset, error) {
	c.created = append(c.created, assets...)

	out := make([]ndp.Asset, len(assets))
	for i, a := range assets {
		out[i] = ndp.Asset{ID: int64(i + 1), ExternalID: a.ExternalID, Name: a.Name}
	}

	return out, nil
}

type fakeTimeSeriesClient struct {
	ndp.TimeSeriesClient
	created []ndp.TimeSeriesCreate
}

func (c *fakeTimeSeriesClient) Create(ctx context.Context, series []ndp.TimeSeriesCreate) ([]ndp.TimeSeries, error) {
	c.created = append(c.created, series...)

	out := make([]ndp.TimeSeries, len(series))
	for i, s := range series {
		out[i] = ndp.TimeSeries{ID: int64(i + 1), ExternalID: s.ExternalID}
	}

	return out, nil
}

type manifestClient struct {
	ndp.Client
	assets *fakeAssetsClient
	series *fakeTimeSeriesClient
}

func (c *manifestClient) Assets() ndp.AssetsClient         { return c.assets }
func (c *manifestClient) TimeSeries() ndp.TimeSeriesClient { return c.series }

func TestApplyManifest(t *testing.T) {
	manifest, err := ndp.ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	client := &manifestClient{
		assets: &fakeAssetsClient{},
		series: &fakeTimeSeriesClient{},
	}

	outcome, err := ndp.ApplyManifest(context.Background(), client, manifest)
	require.NoError(t, err)

	assert.Len(t, outcome.Assets, 4)
	assert.Len(t, outcome.TimeSeries, 1)
	assert.Len(t, client.assets.created, 4)
	require.Len(t, client.series.created, 1)
	assert.Equal(t, "pump-1:pressure", client.series.created[0].ExternalID)
}
