package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterDefaultInclude(t *testing.T) {
	f, err := NewFilter("/proj", []string{DefaultInclude}, nil)
	require.NoError(t, err)

	assert.True(t, f.Match("/proj/src/icons/logo.svg?react"))
	assert.True(t, f.Match("/elsewhere/logo.svg?react"))
	assert.True(t, f.Match("icons/logo.svg?react"))
	assert.True(t, f.Match("/proj/.hidden/logo.svg?react"))
	assert.False(t, f.Match("/proj/src/icons/logo.svg"))
	assert.False(t, f.Match("/proj/src/icons/logo.svg?url"))
	assert.False(t, f.Match("/proj/src/app.tsx"))
}

func TestFilterRejectsVirtualModules(t *testing.T) {
	f, err := NewFilter("", nil, nil)
	require.NoError(t, err)

	assert.True(t, f.Match("anything"))
	assert.False(t, f.Match("\x00virtual:logo.svg?react"))
}

func TestFilterExcludeWins(t *testing.T) {
	f, err := NewFilter("/proj", []string{DefaultInclude}, []string{"**/raw/**"})
	require.NoError(t, err)

	assert.True(t, f.Match("/proj/icons/a.svg?react"))
	assert.False(t, f.Match("/proj/icons/raw/a.svg?react"))
}

func TestFilterResolvesRelativePatterns(t *testing.T) {
	f, err := NewFilter("/proj", []string{"src/**/*.svg"}, nil)
	require.NoError(t, err)

	assert.True(t, f.Match("/proj/src/a/b.svg"))
	assert.False(t, f.Match("/other/src/a/b.svg"))
	assert.False(t, f.Match("src/a/b.svg"))
}

func TestFilterAbsolutePattern(t *testing.T) {
	f, err := NewFilter("/proj", []string{"/assets/*.svg"}, nil)
	require.NoError(t, err)

	assert.True(t, f.Match("/assets/a.svg"))
	assert.False(t, f.Match("assets/a.svg"))
}

func TestFilterInvalidPattern(t *testing.T) {
	_, err := NewFilter("", []string{"[unclosed"}, nil)
	assert.Error(t, err)
}
