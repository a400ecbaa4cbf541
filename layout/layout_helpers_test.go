package layout

import "fmt"

// stackGroups 构造每组一个块的组序列，并按高度依次堆叠出测量结果。
func stackGroups(heights ...float64) ([]Group, Flow) {
	groups := make([]Group, len(heights))
	boxes := make(map[int]Box, len(heights))
	var cursor float64
	for i, h := range heights {
		id := fmt.Sprintf("s%d", i)
		groups[i] = Group{Section: id, Blocks: []Block{{Index: i, Kind: KindEntry, Section: id}}}
		boxes[i] = Box{Top: cursor, Bottom: cursor + h}
		cursor += h
	}
	return groups, NewFlow(boxes)
}

func sections(page Page) []string {
	out := make([]string, len(page.Groups))
	for i, g := range page.Groups {
		out[i] = g.Section
	}
	return out
}

func pageSections(plan *Plan) [][]string {
	out := make([][]string, len(plan.Pages))
	for i, p := range plan.Pages {
		out[i] = sections(p)
	}
	return out
}
