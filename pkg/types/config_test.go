package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderKey(t *testing.T) {
	base := ConvertConfig{}
	assert.Equal(t, base.RenderKey(), DefaultConvertConfig().RenderKey(), "zero config uses defaults")

	nonRendering := ConvertConfig{Jobs: 8, Ledger: "h.db", Force: true}
	assert.Equal(t, base.RenderKey(), nonRendering.RenderKey())

	for _, c := range []ConvertConfig{
		{Font: "Arial"},
		{FontSize: 11},
		{CodeFont: "Menlo"},
		{CodeFontSize: 9},
		{RuleWidth: 30},
	} {
		assert.NotEqual(t, base.RenderKey(), c.RenderKey(), "%+v", c)
	}
}
