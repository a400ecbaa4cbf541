package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/vitae/layout"
	"github.com/ByLCY/vitae/resume"
)

// stubMeasurer 按块类别给出固定高度（乘以缩放），依次堆叠。
type stubMeasurer struct {
	fail   bool
	scales []float64
}

var kindHeights = map[layout.BlockKind]float64{
	layout.KindHeader:       200,
	layout.KindSectionTitle: 50,
	layout.KindEntry:        300,
	layout.KindFixed:        250,
	layout.KindItem:         150,
}

func (m *stubMeasurer) Commit(blocks []layout.Block, scale float64) (layout.Flow, error) {
	m.scales = append(m.scales, scale)
	if m.fail {
		return layout.Flow{}, errors.New("measure failed")
	}
	boxes := make(map[int]layout.Box, len(blocks))
	cursor := 0.0
	for _, b := range blocks {
		h := kindHeights[b.Kind] * scale
		boxes[b.Index] = layout.Box{Top: cursor, Bottom: cursor + h}
		cursor += h
	}
	return layout.NewFlow(boxes), nil
}

// 示例简历的组高度：页眉 200、工作 350/300、教育 350、技能 250；可用高度 1008。
func newLoadedEditor(t *testing.T) (*Editor, *stubMeasurer) {
	t.Helper()
	m := &stubMeasurer{}
	e := New(m, Options{Meta: layout.Meta{Title: "${name} - Résumé", Creator: "vitae"}})
	_, err := e.Load(resume.Example())
	require.NoError(t, err)
	return e, m
}

func pageIDs(plan *layout.Plan) [][]string {
	out := make([][]string, len(plan.Pages))
	for i, p := range plan.Pages {
		out[i] = []string{}
		for _, g := range p.Groups {
			out[i] = append(out[i], g.Section)
		}
	}
	return out
}

func TestLoadRunsAutomaticLayout(t *testing.T) {
	e, _ := newLoadedEditor(t)
	plan := e.Plan()

	assert.Equal(t, [][]string{
		{layout.HeaderSection, resume.SectionWork, resume.SectionWork},
		{resume.SectionEducation, resume.SectionSkills},
	}, pageIDs(plan))
	assert.Equal(t, layout.Assignment{
		layout.HeaderSection:    1,
		resume.SectionWork:      1,
		resume.SectionEducation: 2,
		resume.SectionSkills:    2,
	}, plan.Assignment)
	assert.Equal(t, "Jane Smith - Résumé", plan.Meta.Title)
	assert.Equal(t, 2, e.State().LastPages)
}

func TestEnterManualKeepsAssignment(t *testing.T) {
	e, _ := newLoadedEditor(t)
	before := e.Plan().Assignment.Clone()

	plan, err := e.EnterManual()
	require.NoError(t, err)
	assert.Equal(t, layout.Manual, plan.Mode)
	assert.Equal(t, 2, plan.TargetPages)
	assert.Equal(t, before, plan.Assignment)
	assert.False(t, plan.Overflowed)
	assert.Equal(t, layout.PinMap(before), e.State().Pins)
}

func TestEnterManualKeepsSpanningSectionInPlace(t *testing.T) {
	doc := resume.Example()
	doc.WorkExperience = append(doc.WorkExperience,
		resume.Job{Company: "Initech", Title: "Engineer"},
		resume.Job{Company: "Hooli", Title: "Intern"},
	)
	e := New(&stubMeasurer{}, Options{})
	auto, err := e.Load(doc)
	require.NoError(t, err)

	// 工作经历跨越第 1、2 页：200+350+300 | 300+300+350 | 250。
	layoutIDs := [][]string{
		{layout.HeaderSection, resume.SectionWork, resume.SectionWork},
		{resume.SectionWork, resume.SectionWork, resume.SectionEducation},
		{resume.SectionSkills},
	}
	require.Equal(t, layoutIDs, pageIDs(auto))
	before := auto.Assignment.Clone()

	plan, err := e.EnterManual()
	require.NoError(t, err)
	assert.Equal(t, 3, plan.TargetPages)
	assert.Equal(t, layoutIDs, pageIDs(plan))
	assert.Equal(t, before, plan.Assignment)
	assert.False(t, plan.Overflowed)
}

func TestSetTargetPagesRedistributes(t *testing.T) {
	e, _ := newLoadedEditor(t)

	_, err := e.SetTargetPages(1)
	require.ErrorIs(t, err, ErrNotManual)
	assert.Equal(t, layout.Automatic, e.State().Mode)

	_, err = e.EnterManual()
	require.NoError(t, err)
	plan, err := e.SetTargetPages(1)
	require.NoError(t, err)
	assert.Empty(t, e.State().Pins)
	assert.Equal(t, 1, plan.TargetPages)
	assert.True(t, plan.Overflowed)
	assert.Len(t, plan.Pages, 2)

	plan, err = e.SetTargetPages(9)
	require.NoError(t, err)
	assert.Equal(t, 3, plan.TargetPages)
	assert.False(t, plan.Overflowed)
	assert.Equal(t, [][]string{
		{layout.HeaderSection, resume.SectionWork, resume.SectionWork},
		{resume.SectionEducation, resume.SectionSkills},
		{},
	}, pageIDs(plan))
}

func TestPinSectionSnapshotsAssignment(t *testing.T) {
	e, _ := newLoadedEditor(t)
	_, err := e.EnterManual()
	require.NoError(t, err)
	_, err = e.SetTargetPages(3)
	require.NoError(t, err)

	plan, err := e.PinSection(resume.SectionSkills, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Assignment[resume.SectionSkills])
	assert.Equal(t, 2, plan.Assignment[resume.SectionEducation])
	assert.Equal(t, layout.PinMap{
		layout.HeaderSection:    1,
		resume.SectionWork:      1,
		resume.SectionEducation: 2,
		resume.SectionSkills:    3,
	}, e.State().Pins)

	_, err = e.PinSection("nope", 1)
	require.ErrorIs(t, err, ErrUnknownSection)
	assert.Equal(t, 3, e.State().Pins[resume.SectionSkills])
}

func TestEnterAutomaticClearsPins(t *testing.T) {
	e, _ := newLoadedEditor(t)
	_, err := e.EnterManual()
	require.NoError(t, err)

	plan, err := e.EnterAutomatic()
	require.NoError(t, err)
	st := e.State()
	assert.Equal(t, layout.Automatic, st.Mode)
	assert.Empty(t, st.Pins)
	assert.Zero(t, st.TargetPages)
	assert.Zero(t, plan.TargetPages)
}

func TestTextScaleControls(t *testing.T) {
	e, m := newLoadedEditor(t)

	_, err := e.GrowText()
	require.NoError(t, err)
	assert.Equal(t, 100, e.State().TextScale)

	plan, err := e.ShrinkText()
	require.NoError(t, err)
	assert.Equal(t, 95, e.State().TextScale)
	assert.InDelta(t, 0.95, plan.Scale, 1e-9)
	assert.InDelta(t, 0.95, m.scales[len(m.scales)-1], 1e-9)

	_, err = e.SetTextScale(10)
	require.NoError(t, err)
	assert.Equal(t, 50, e.State().TextScale)

	_, err = e.ResetText()
	require.NoError(t, err)
	assert.Equal(t, 100, e.State().TextScale)

	_, err = e.SetTextScale(60)
	require.NoError(t, err)
	_, err = e.Load(resume.Example())
	require.NoError(t, err)
	assert.Equal(t, 100, e.State().TextScale)
}

func TestLoadResetsSessionState(t *testing.T) {
	e, _ := newLoadedEditor(t)
	_, err := e.Reorder(resume.SectionSkills)
	require.NoError(t, err)
	_, err = e.EnterManual()
	require.NoError(t, err)

	_, err = e.Load(resume.Example())
	require.NoError(t, err)
	st := e.State()
	assert.Equal(t, layout.DefaultOrder(), st.Order)
	assert.Equal(t, layout.Automatic, st.Mode)
	assert.Empty(t, st.Pins)
}

func TestFailedRunRollsBack(t *testing.T) {
	e, m := newLoadedEditor(t)
	before := e.State()
	plan := e.Plan()

	m.fail = true
	_, err := e.MoveUp(resume.SectionEducation)
	require.Error(t, err)
	assert.Equal(t, before, e.State())
	assert.Same(t, plan, e.Plan())

	_, err = e.Load(&resume.Document{Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, "Jane Smith", e.Document().Name)
}

func TestUnknownSectionsAreRejected(t *testing.T) {
	e, _ := newLoadedEditor(t)
	for _, fn := range []func() (*layout.Plan, error){
		func() (*layout.Plan, error) { return e.Reorder("nope") },
		func() (*layout.Plan, error) { return e.MoveSection("nope", 1) },
		func() (*layout.Plan, error) { return e.MoveUp("nope") },
		func() (*layout.Plan, error) { return e.MoveDown("nope") },
		func() (*layout.Plan, error) { return e.SetHidden("nope", true) },
	} {
		_, err := fn()
		assert.ErrorIs(t, err, ErrUnknownSection)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	e, _ := newLoadedEditor(t)
	_, err := e.EnterManual()
	require.NoError(t, err)
	_, err = e.PinSection(resume.SectionSkills, 1)
	require.NoError(t, err)

	a, err := e.Refresh()
	require.NoError(t, err)
	b, err := e.Refresh()
	require.NoError(t, err)
	assert.Equal(t, pageIDs(a), pageIDs(b))
	assert.Equal(t, a.Assignment, b.Assignment)
	assert.Equal(t, a.Overflowed, b.Overflowed)
}

func TestReorderAndHideChangeLayout(t *testing.T) {
	e, _ := newLoadedEditor(t)
	plan, err := e.MoveSection(resume.SectionSkills, 1)
	require.NoError(t, err)
	assert.Equal(t, resume.SectionSkills, plan.Pages[0].Groups[1].Section)

	plan, err = e.SetHidden(resume.SectionWork, true)
	require.NoError(t, err)
	assert.Len(t, plan.Pages, 1)
	_, ok := plan.Assignment[resume.SectionWork]
	assert.False(t, ok)
}

func TestFitToOnePage(t *testing.T) {
	e, _ := newLoadedEditor(t)
	plan, err := e.FitToOnePage()
	require.NoError(t, err)
	require.Len(t, plan.Pages, 1)
	assert.Len(t, plan.Pages[0].Groups, 5)
	// 内容总高 1450，可用高度 1008。
	assert.LessOrEqual(t, 1450*plan.Scale, 1008.0)
	assert.Greater(t, plan.Scale, 0.68)
	assert.Equal(t, 100, e.State().TextScale)
	assert.Same(t, plan, e.Plan())
}

func TestNoDocument(t *testing.T) {
	e := New(&stubMeasurer{}, Options{})
	_, err := e.Refresh()
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.FitToOnePage()
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = e.Load(nil)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestStateTransitionsArePure(t *testing.T) {
	l := DefaultLimits()
	st := NewState(l)
	st.Last = layout.Assignment{"a": 1, "b": 2}
	st.LastPages = 7

	manual := st.EnterManual(l)
	assert.Equal(t, 3, manual.TargetPages)
	assert.Equal(t, layout.Automatic, st.Mode)

	manual.Pins["a"] = 9
	assert.Equal(t, 1, st.Last["a"])

	st.LastPages = 0
	assert.Equal(t, 1, st.EnterManual(l).TargetPages)

	pinned, err := manual.WithPin("b", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, pinned.Pins["b"])
	assert.Equal(t, 1, pinned.Pins["a"])
}
