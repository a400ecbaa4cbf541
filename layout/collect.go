package layout

import "github.com/ByLCY/vitae/resume"

// Collect 把文档按段落顺序展开为有序的组序列。
//
// 页眉（若存在）总是第一个组；隐藏或为空的段落被跳过；固定块段落产出一个组；
// 列表段落的标题与第一个条目组成一个组，其余条目各自成组；
// 独立条目段落中的每个条目各自成组，并使用条目自己的标识。
// 相同的输入总是得到相同的输出。
func Collect(doc *resume.Document, order SectionOrder) []Group {
	if doc == nil {
		return nil
	}
	c := &collector{}
	if doc.HasHeader() {
		c.group(HeaderSection, c.block(KindHeader, HeaderSection, "", doc))
	}
	for _, def := range order {
		if def.Hidden {
			continue
		}
		switch def.Kind {
		case SectionFixed:
			ref, ok := doc.Fixed(def.ID)
			if !ok {
				continue
			}
			// 固定块自带标题，整个段落就是一个块。
			c.group(def.ID, c.block(KindFixed, def.ID, def.Label, ref))
		case SectionList:
			entries := doc.Entries(def.ID)
			if len(entries) == 0 {
				continue
			}
			c.group(def.ID,
				c.block(KindSectionTitle, def.ID, def.Label, nil),
				c.block(KindEntry, def.ID, def.Label, entries[0]),
			)
			for _, e := range entries[1:] {
				c.group(def.ID, c.block(KindEntry, def.ID, def.Label, e))
			}
		case SectionItems:
			for _, e := range doc.Entries(def.ID) {
				it, ok := e.(*resume.Item)
				if !ok || it.ID == "" {
					continue
				}
				c.group(it.ID, c.block(KindItem, it.ID, it.Title, it))
			}
		}
	}
	return c.groups
}

type collector struct {
	next   int
	groups []Group
}

func (c *collector) block(kind BlockKind, section, label string, ref any) Block {
	b := Block{Index: c.next, Kind: kind, Section: section, Label: label, Ref: ref}
	c.next++
	return b
}

func (c *collector) group(section string, blocks ...Block) {
	c.groups = append(c.groups, Group{Section: section, Blocks: blocks})
}
