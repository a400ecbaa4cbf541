package resume

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// 段落（section）标识，与 YAML 顶层字段名保持一致。
const (
	SectionSummary      = "summary"
	SectionWork         = "work_experience"
	SectionEducation    = "education"
	SectionProjects     = "projects"
	SectionAwards       = "awards"
	SectionPublications = "publications"
	SectionAdditional   = "additional"
	SectionSkills       = "skills"
)

// Document 是规范化之后的简历记录，布局引擎只接触这一结构。
type Document struct {
	Name           string        `yaml:"name" json:"name"`
	Contact        Contact       `yaml:"contact,omitempty" json:"contact"`
	Summary        string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	WorkExperience []Job         `yaml:"work_experience,omitempty" json:"work_experience"`
	Education      []Education   `yaml:"education,omitempty" json:"education"`
	Projects       []Project     `yaml:"projects,omitempty" json:"projects,omitempty"`
	Awards         []Award       `yaml:"awards,omitempty" json:"awards,omitempty"`
	Publications   []Publication `yaml:"publications,omitempty" json:"publications,omitempty"`
	Additional     []Item        `yaml:"additional,omitempty" json:"additional,omitempty"`
	Skills         Skills        `yaml:"skills,omitempty" json:"skills"`
}

// Contact 为页眉中的联系方式。
type Contact struct {
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
	Website  string `yaml:"website,omitempty" json:"website,omitempty"`
}

// IsZero 报告联系方式是否全部为空。
func (c Contact) IsZero() bool {
	return c == Contact{}
}

// Job 表示一段工作经历。
type Job struct {
	Company          string `yaml:"company,omitempty" json:"company"`
	Title            string `yaml:"title,omitempty" json:"title"`
	Location         string `yaml:"location,omitempty" json:"location,omitempty"`
	Dates            string `yaml:"dates,omitempty" json:"dates,omitempty"`
	Tagline          string `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	Responsibilities Lines  `yaml:"responsibilities,omitempty" json:"responsibilities"`
}

// Education 表示一段教育经历。
type Education struct {
	Institution    string `yaml:"institution,omitempty" json:"institution"`
	Location       string `yaml:"location,omitempty" json:"location,omitempty"`
	GraduationDate string `yaml:"graduation_date,omitempty" json:"graduation_date,omitempty"`
	Details        string `yaml:"details,omitempty" json:"details,omitempty"`
}

// Project 表示一个项目条目。
type Project struct {
	Name        string `yaml:"name,omitempty" json:"name"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
	Dates       string `yaml:"dates,omitempty" json:"dates,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Bullets     Lines  `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

// Award 表示一个奖项。
type Award struct {
	Title       string `yaml:"title,omitempty" json:"title"`
	Issuer      string `yaml:"issuer,omitempty" json:"issuer,omitempty"`
	Date        string `yaml:"date,omitempty" json:"date,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Publication 表示一篇发表物。
type Publication struct {
	Title   string `yaml:"title,omitempty" json:"title"`
	Authors string `yaml:"authors,omitempty" json:"authors,omitempty"`
	Venue   string `yaml:"venue,omitempty" json:"venue,omitempty"`
	Date    string `yaml:"date,omitempty" json:"date,omitempty"`
	URL     string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Item 是可独立排序的自由条目，每个条目拥有自己的稳定标识。
type Item struct {
	ID      string `yaml:"id,omitempty" json:"id"`
	Title   string `yaml:"title,omitempty" json:"title"`
	Date    string `yaml:"date,omitempty" json:"date,omitempty"`
	Body    string `yaml:"body,omitempty" json:"body,omitempty"`
	Bullets Lines  `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

// Lines 既可以写成 YAML 列表，也可以写成按换行分隔的字符串。
type Lines []string

// UnmarshalYAML 实现 yaml.Unmarshaler。
func (l *Lines) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = splitLines(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		*l = nil
		return nil
	}
}

func splitLines(s string) Lines {
	var out Lines
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Skill 是技能表中的一行，Key 保留 YAML 中的原始键名。
type Skill struct {
	Key   string   `json:"key"`
	Items []string `json:"items,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// Label 把 snake_case 键名转为标题形式，例如 hard_skills → Hard Skills。
func (s Skill) Label() string {
	words := strings.Fields(strings.ReplaceAll(s.Key, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Value 返回渲染用的文本，列表以 "; " 连接。
func (s Skill) Value() string {
	if len(s.Items) > 0 {
		return strings.Join(s.Items, "; ")
	}
	return s.Text
}

// Skills 保持 YAML 中的键顺序。
type Skills []Skill

// UnmarshalYAML 实现 yaml.Unmarshaler，按出现顺序读取映射。
func (s *Skills) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		*s = nil
		return nil
	}
	out := make(Skills, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		skill := Skill{Key: key.Value}
		switch val.Kind {
		case yaml.SequenceNode:
			if err := val.Decode(&skill.Items); err != nil {
				return err
			}
		case yaml.ScalarNode:
			skill.Text = val.Value
		}
		out = append(out, skill)
	}
	*s = out
	return nil
}

// MarshalYAML 实现 yaml.Marshaler，输出保持原有顺序的映射。
func (s Skills) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, skill := range s {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: skill.Key}
		var val yaml.Node
		if len(skill.Items) > 0 {
			if err := val.Encode(skill.Items); err != nil {
				return nil, err
			}
		} else {
			val = yaml.Node{Kind: yaml.ScalarNode, Value: skill.Text}
		}
		node.Content = append(node.Content, key, &val)
	}
	return node, nil
}

// HasHeader 报告文档是否需要页眉（姓名或联系方式）。
func (d *Document) HasHeader() bool {
	return d.Name != "" || !d.Contact.IsZero()
}

// Entries 返回列表型段落的条目指针，按文档顺序排列。
// 对未知或非列表型段落返回 nil。
func (d *Document) Entries(section string) []any {
	var out []any
	switch section {
	case SectionWork:
		for i := range d.WorkExperience {
			out = append(out, &d.WorkExperience[i])
		}
	case SectionEducation:
		for i := range d.Education {
			out = append(out, &d.Education[i])
		}
	case SectionProjects:
		for i := range d.Projects {
			out = append(out, &d.Projects[i])
		}
	case SectionAwards:
		for i := range d.Awards {
			out = append(out, &d.Awards[i])
		}
	case SectionPublications:
		for i := range d.Publications {
			out = append(out, &d.Publications[i])
		}
	case SectionAdditional:
		for i := range d.Additional {
			out = append(out, &d.Additional[i])
		}
	}
	return out
}

// Fixed 返回固定块段落（summary、skills）的内容；内容为空时 ok 为 false。
func (d *Document) Fixed(section string) (any, bool) {
	switch section {
	case SectionSummary:
		if strings.TrimSpace(d.Summary) == "" {
			return nil, false
		}
		return &d.Summary, true
	case SectionSkills:
		for _, s := range d.Skills {
			if s.Value() != "" {
				return &d.Skills, true
			}
		}
		return nil, false
	}
	return nil, false
}
