// Package resume 负责简历数据的读取、校验与规范化。
// 布局引擎只接收本包产出的 *Document，从不直接接触原始 YAML。
package resume

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// itemNamespace 用于为缺少 id 的自由条目生成确定性的 UUIDv5。
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ByLCY/vitae/additional"))

// ValidationError 表示简历数据不符合 schema。
type ValidationError struct {
	Problems []string
	Cause    error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("简历校验失败: %v", e.Cause)
	}
	return fmt.Sprintf("简历校验失败: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Load 读取并规范化 YAML 简历文件。
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取简历文件 %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析 YAML 文本：先按 schema 校验，再解码为 Document 并规范化。
func Parse(data []byte) (*Document, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("解析 YAML 失败: %w", err)
	}
	if _, ok := tree.(map[string]any); !ok {
		return nil, &ValidationError{Problems: []string{"YAML 顶层必须是包含简历字段的对象"}}
	}
	if err := validateTree(tree); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("解码简历失败: %w", err)
	}
	Normalize(&doc)
	return &doc, nil
}

func validateTree(tree any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(tree))
	if err != nil {
		return &ValidationError{Cause: err}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return &ValidationError{Problems: problems}
}

// Normalize 去除首尾空白、丢弃空条目，并为自由条目补齐稳定 id。
func Normalize(doc *Document) {
	doc.Name = strings.TrimSpace(doc.Name)
	doc.Summary = strings.TrimSpace(doc.Summary)
	c := &doc.Contact
	for _, f := range []*string{&c.Phone, &c.Email, &c.Location, &c.LinkedIn, &c.GitHub, &c.Website} {
		*f = strings.TrimSpace(*f)
	}

	jobs := doc.WorkExperience[:0]
	for _, job := range doc.WorkExperience {
		job.Company = strings.TrimSpace(job.Company)
		job.Title = strings.TrimSpace(job.Title)
		job.Location = strings.TrimSpace(job.Location)
		job.Dates = strings.TrimSpace(job.Dates)
		job.Tagline = strings.TrimSpace(job.Tagline)
		job.Responsibilities = trimLines(job.Responsibilities)
		if job.Company == "" && job.Title == "" {
			continue
		}
		jobs = append(jobs, job)
	}
	doc.WorkExperience = jobs

	edus := doc.Education[:0]
	for _, edu := range doc.Education {
		edu.Institution = strings.TrimSpace(edu.Institution)
		edu.Location = strings.TrimSpace(edu.Location)
		edu.GraduationDate = strings.TrimSpace(edu.GraduationDate)
		edu.Details = strings.TrimSpace(edu.Details)
		if edu.Institution == "" {
			continue
		}
		edus = append(edus, edu)
	}
	doc.Education = edus

	projects := doc.Projects[:0]
	for _, p := range doc.Projects {
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)
		p.Bullets = trimLines(p.Bullets)
		if p.Name == "" && p.Description == "" {
			continue
		}
		projects = append(projects, p)
	}
	doc.Projects = projects

	awards := doc.Awards[:0]
	for _, a := range doc.Awards {
		if a.Title = strings.TrimSpace(a.Title); a.Title == "" {
			continue
		}
		awards = append(awards, a)
	}
	doc.Awards = awards

	pubs := doc.Publications[:0]
	for _, p := range doc.Publications {
		if p.Title = strings.TrimSpace(p.Title); p.Title == "" {
			continue
		}
		pubs = append(pubs, p)
	}
	doc.Publications = pubs

	items := doc.Additional[:0]
	seen := map[string]bool{}
	for i, it := range doc.Additional {
		it.Title = strings.TrimSpace(it.Title)
		it.Body = strings.TrimSpace(it.Body)
		it.Bullets = trimLines(it.Bullets)
		if it.Title == "" && it.Body == "" && len(it.Bullets) == 0 {
			continue
		}
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" || seen[it.ID] {
			it.ID = itemID(i, it)
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	doc.Additional = items

	skills := doc.Skills[:0]
	for _, s := range doc.Skills {
		s.Text = strings.TrimSpace(s.Text)
		s.Items = trimLines(s.Items)
		if s.Value() == "" {
			continue
		}
		skills = append(skills, s)
	}
	doc.Skills = skills
}

func itemID(index int, it Item) string {
	seed := fmt.Sprintf("%d\x00%s\x00%s\x00%s", index, it.Title, it.Date, it.Body)
	return uuid.NewSHA1(itemNamespace, []byte(seed)).String()
}

func trimLines(lines []string) []string {
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Marshal 把文档序列化为 YAML，字段顺序与读取时一致。
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("序列化 YAML 失败: %w", err)
	}
	return out, nil
}
