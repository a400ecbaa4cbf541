package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: "  Jane Smith "
contact:
  email: jane@example.com
work_experience:
  - company: ACME
    title: Engineer
    responsibilities: |
      Built things

      Shipped things
  - company: ""
    title: ""
  - company: Globex
    responsibilities:
      - Ran things
education:
  - institution: Berkeley
    graduation_date: 2018-05-01
  - details: no institution
skills:
  technologies: [Go, SQL]
  hard_skills: [Design]
  language_skills: English
additional:
  - title: Volunteering
    body: Food bank
  - id: talks
    title: Talks
`

func TestParseNormalizesDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", doc.Name)
	require.Len(t, doc.WorkExperience, 2)
	assert.Equal(t, Lines{"Built things", "Shipped things"}, doc.WorkExperience[0].Responsibilities)
	assert.Equal(t, Lines{"Ran things"}, doc.WorkExperience[1].Responsibilities)

	require.Len(t, doc.Education, 1)
	assert.Equal(t, "2018-05-01", doc.Education[0].GraduationDate)

	require.Len(t, doc.Skills, 3)
	assert.Equal(t, "technologies", doc.Skills[0].Key)
	assert.Equal(t, "Hard Skills", doc.Skills[1].Label())
	assert.Equal(t, "Go; SQL", doc.Skills[0].Value())
	assert.Equal(t, "English", doc.Skills[2].Value())

	require.Len(t, doc.Additional, 2)
	assert.NotEmpty(t, doc.Additional[0].ID)
	assert.Equal(t, "talks", doc.Additional[1].ID)
}

func TestParseGeneratesStableItemIDs(t *testing.T) {
	first, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	second, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, first.Additional[0].ID, second.Additional[0].ID)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	_, err := Parse([]byte("name: x\nwork_experience: not-a-list\n"))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Problems)
}

func TestParseRejectsNonObject(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestMarshalRoundTripKeepsSkillOrder(t *testing.T) {
	doc := Example()
	out, err := Marshal(doc)
	require.NoError(t, err)

	back, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, back.Skills, len(doc.Skills))
	for i := range doc.Skills {
		assert.Equal(t, doc.Skills[i].Key, back.Skills[i].Key)
		assert.Equal(t, doc.Skills[i].Value(), back.Skills[i].Value())
	}
	assert.Equal(t, doc.WorkExperience, back.WorkExperience)
}

func TestDocumentEntriesAndFixed(t *testing.T) {
	doc := Example()
	assert.Len(t, doc.Entries(SectionWork), 2)
	assert.Empty(t, doc.Entries(SectionAwards))
	assert.Nil(t, doc.Entries(SectionSkills))

	_, ok := doc.Fixed(SectionSkills)
	assert.True(t, ok)
	_, ok = doc.Fixed(SectionSummary)
	assert.False(t, ok)
	assert.True(t, doc.HasHeader())
}
