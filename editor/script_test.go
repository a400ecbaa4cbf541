package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/vitae/dsl"
	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/resume"
)

type recordingOutput struct {
	rendered map[string]*layout.Plan
	debugged map[string]*layout.Plan
}

func newRecordingOutput() *recordingOutput {
	return &recordingOutput{rendered: map[string]*layout.Plan{}, debugged: map[string]*layout.Plan{}}
}

func (o *recordingOutput) Render(path string, plan *layout.Plan) error {
	o.rendered[path] = plan
	return nil
}

func (o *recordingOutput) Debug(path string, plan *layout.Plan) error {
	o.debugged[path] = plan
	return nil
}

func TestExecReplaysScript(t *testing.T) {
	e, _ := newLoadedEditor(t)
	script, err := dsl.ParseString(`
move skills to 1
mode manual
pages 3
pin skills 3
text shrink
render "a.pdf"
fit
debug "fit.json"
mode auto
`)
	require.NoError(t, err)

	out := newRecordingOutput()
	require.NoError(t, e.Exec(script, out))

	rendered := out.rendered["a.pdf"]
	require.NotNil(t, rendered)
	assert.Equal(t, layout.Manual, rendered.Mode)
	assert.Equal(t, 3, rendered.Assignment[resume.SectionSkills])
	assert.InDelta(t, 0.95, rendered.Scale, 1e-9)

	fitted := out.debugged["fit.json"]
	require.NotNil(t, fitted)
	assert.Len(t, fitted.Pages, 1)

	st := e.State()
	assert.Equal(t, layout.Automatic, st.Mode)
	assert.Equal(t, 95, st.TextScale)
	assert.Equal(t, resume.SectionSkills, st.Order[0].ID)
}

func TestExecStopsAtFirstError(t *testing.T) {
	e, _ := newLoadedEditor(t)
	script, err := dsl.ParseString("text 80\npages 2\ntext 60\n")
	require.NoError(t, err)

	err = e.Exec(script, newRecordingOutput())
	require.ErrorIs(t, err, ErrNotManual)
	assert.Contains(t, err.Error(), "第 2 行")
	assert.Equal(t, 80, e.State().TextScale)
}

func TestFileOutputDebugWritesJSON(t *testing.T) {
	e, _ := newLoadedEditor(t)
	dir := t.TempDir()
	out := FileOutput{BaseDir: dir}
	require.NoError(t, out.Debug("nested/plan.json", e.Plan()))

	raw, err := os.ReadFile(filepath.Join(dir, "nested", "plan.json"))
	require.NoError(t, err)
	var decoded struct {
		Mode       string         `json:"mode"`
		Assignment map[string]int `json:"assignment"`
		Pages      []struct {
			Number int `json:"number"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "auto", decoded.Mode)
	assert.Len(t, decoded.Pages, 2)
	assert.Equal(t, 2, decoded.Assignment[resume.SectionEducation])

	assert.Error(t, out.Render("x.pdf", e.Plan()))
}
