package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
	"github.com/strataforge/strata/pkg/ports"
	"github.com/strataforge/strata/pkg/stage"
)

func TestFileStoreContract(t *testing.T) {
	ports.RunLayerStoreContract(t, NewStore(t.TempDir()))
}

func TestFileStoreRejectsPathyIdentifiers(t *testing.T) {
	ctx := context.Background()
	store := NewStore(t.TempDir())

	for _, bad := range []string{"", "../escape.yaml", `sub\dir.yaml`, ManifestName} {
		assert.Error(t, store.Save(ctx, bad, layer.New("x.yaml")), "identifier %q", bad)
	}
}

func TestFileStoreAppendsExtension(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save(ctx, "shot", layer.New("shot")))
	assert.FileExists(t, filepath.Join(dir, "shot.yaml"))
}

func TestFileStoreListSkipsManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Save(ctx, "shot.yaml", layer.New("shot.yaml")))
	require.NoError(t, SaveManifest(dir, &Manifest{Layers: []string{"shot.yaml"}}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shot.yaml"}, ids)
}

func TestStageRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	session := layer.New("session.yaml")
	shot := layer.New("shot.yaml")

	cube := domain.NewPrimSpec(domain.SpecifierDef)
	cube.TypeName = "Cube"
	require.NoError(t, shot.SetSpecAt(domain.MustPath("/World/Cube"), cube))

	st, err := stage.New([]*layer.Layer{session, shot}, stage.WithEditTarget("shot.yaml"))
	require.NoError(t, err)
	require.NoError(t, SaveStage(ctx, dir, st))

	loaded, err := LoadStage(ctx, dir)
	require.NoError(t, err)

	require.Len(t, loaded.Layers(), 2)
	assert.Equal(t, "session.yaml", loaded.Layers()[0].Identifier(), "stack order survives")
	assert.Equal(t, "shot.yaml", loaded.EditTarget().Identifier(), "edit target survives")
	assert.True(t, loaded.HasPrim(domain.MustPath("/World/Cube")))
}

func TestLoadStageMissingManifest(t *testing.T) {
	_, err := LoadStage(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestLoadManifestRequiresLayers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveManifest(dir, &Manifest{}))

	_, err := LoadManifest(dir)
	assert.Error(t, err)
}
