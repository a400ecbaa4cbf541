package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/vitae/dsl"
)

const sampleScript = `
# 调整段落顺序
order skills education "work_experience"
move projects up
move skills to 1; move education down

hide awards
show awards
mode manual   // 冻结当前分页
pages 2
pin education 2
text shrink
text 85
fit
render "out/resume.pdf"
debug "out/plan.json"
mode auto
`

func TestParseScript(t *testing.T) {
	script, err := dsl.ParseString(sampleScript)
	require.NoError(t, err)

	var names []string
	for _, c := range script.Commands {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{
		"order", "move", "move", "move", "hide", "show", "mode", "pages", "pin",
		"text", "text", "fit", "render", "debug", "mode",
	}, names)

	cmds := script.Commands
	assert.Equal(t, []string{"skills", "education", "work_experience"}, cmds[0].Order.IDs())
	assert.True(t, cmds[1].Move.Up)
	require.NotNil(t, cmds[2].Move.To)
	assert.Equal(t, 1, *cmds[2].Move.To)
	assert.True(t, cmds[3].Move.Down)
	assert.Equal(t, "awards", cmds[4].Hide.Section.String())
	assert.True(t, cmds[6].Mode.Manual())
	assert.Equal(t, 2, cmds[7].Pages.Count)
	assert.Equal(t, "education", cmds[8].Pin.Section.String())
	assert.Equal(t, 2, cmds[8].Pin.Page)
	assert.True(t, cmds[9].Text.Shrink)
	require.NotNil(t, cmds[10].Text.Percent)
	assert.Equal(t, 85, *cmds[10].Text.Percent)
	assert.Equal(t, dsl.StringLiteral("out/resume.pdf"), cmds[12].Render.Path)
	assert.Equal(t, dsl.StringLiteral("out/plan.json"), cmds[13].Debug.Path)
	assert.False(t, cmds[14].Mode.Manual())
}

func TestParseItemIdentities(t *testing.T) {
	script, err := dsl.ParseString("pin 6ba7b810-9dad-11d1-80b4-00c04fd430c8 3\n")
	require.NoError(t, err)
	require.Len(t, script.Commands, 1)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", script.Commands[0].Pin.Section.String())
	assert.Equal(t, 3, script.Commands[0].Pin.Page)
}

func TestParseEmptyScript(t *testing.T) {
	script, err := dsl.ParseString("\n# nothing here\n\n")
	require.NoError(t, err)
	assert.Empty(t, script.Commands)
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, src := range []string{
		"mode sideways\n",
		"pages many\n",
		"render out.pdf\n",
		"frobnicate\n",
	} {
		_, err := dsl.ParseString(src)
		assert.Error(t, err, src)
	}
}
