package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/panache/config"
)

func TestDefaultPandocEnablesFancyLists(t *testing.T) {
	cfg := config.Default(config.FlavorPandoc)
	require.True(t, cfg.Extensions.FancyLists)
	require.Equal(t, 80, cfg.LineWidth)
}

func TestDefaultCommonMarkIsMinimal(t *testing.T) {
	cfg := config.Default(config.FlavorCommonMark)
	require.False(t, cfg.Extensions.FancyLists)
	require.False(t, cfg.Extensions.Footnotes)
	require.True(t, cfg.Extensions.RawHTML)
}

func TestDecodeConfigOverridesLineWidth(t *testing.T) {
	cfg, err := config.DecodeConfig(strings.NewReader(`line_width = 120`))
	require.NoError(t, err)
	require.Equal(t, 120, cfg.LineWidth)
	// unspecified fields keep the pandoc default seed
	require.True(t, cfg.Extensions.FancyLists)
}
