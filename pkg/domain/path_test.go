package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata/pkg/domain"
)

func TestParsePath(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p, err := domain.ParsePath("/World/Cube")
		require.NoError(t, err)
		assert.Equal(t, "/World/Cube", p.String())
		assert.Equal(t, "Cube", p.Name())
		assert.Equal(t, "/World", p.Parent().String())
		assert.Equal(t, []string{"World", "Cube"}, p.Elements())
	})

	t.Run("Root", func(t *testing.T) {
		p, err := domain.ParsePath("/")
		require.NoError(t, err)
		assert.True(t, p.IsRoot())
		assert.Equal(t, "", p.Name())
		assert.True(t, p.Parent().IsRoot())
	})

	t.Run("Rejects relative and malformed", func(t *testing.T) {
		for _, bad := range []string{"", "World", "World/Cube", "/World/", "/World//Cube", "/World/9th", "/Wor ld", "/World/Cu-be"} {
			_, err := domain.ParsePath(bad)
			assert.ErrorIs(t, err, domain.ErrInvalidPath, "input %q", bad)
		}
	})
}

func TestPathAppendChild(t *testing.T) {
	world := domain.MustPath("/World")

	child, err := world.AppendChild("Cube")
	require.NoError(t, err)
	assert.Equal(t, "/World/Cube", child.String())

	fromRoot, err := domain.RootPath.AppendChild("World")
	require.NoError(t, err)
	assert.Equal(t, world, fromRoot)

	_, err = world.AppendChild("not a name")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestPathHasPrefix(t *testing.T) {
	cube := domain.MustPath("/World/Cube")

	assert.True(t, cube.HasPrefix(domain.MustPath("/World")))
	assert.True(t, cube.HasPrefix(cube))
	assert.True(t, cube.HasPrefix(domain.RootPath))
	assert.False(t, cube.HasPrefix(domain.MustPath("/World/Cu")),
		"prefix must match whole elements")
	assert.False(t, domain.MustPath("/World").HasPrefix(cube))
}

func TestValidName(t *testing.T) {
	assert.True(t, domain.ValidName("Cube"))
	assert.True(t, domain.ValidName("_hidden"))
	assert.True(t, domain.ValidName("prim01"))
	assert.False(t, domain.ValidName(""))
	assert.False(t, domain.ValidName("1stCube"))
	assert.False(t, domain.ValidName("with space"))
	assert.False(t, domain.ValidName("dash-ed"))
}

func TestPathTextMarshalling(t *testing.T) {
	p := domain.MustPath("/World/Cube")
	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "/World/Cube", string(text))

	var decoded domain.Path
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, p, decoded)

	assert.Error(t, decoded.UnmarshalText([]byte("not/absolute")))
}
