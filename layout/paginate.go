package layout

import "sort"

// PaginateAuto 以贪心方式把组依次装入页面。
//
// 分页阈值初始为 usable。当前页非空且组的底部越过阈值时另起一页，
// 并把阈值重置为该组顶部加 usable。恰好填满剩余空间的组留在当前页。
// 单个组高于 usable 时照样放入，不在组内拆分。
func PaginateAuto(groups []Group, flow Flow, usable float64) *Plan {
	var pages [][]Group
	var current []Group
	threshold := usable
	for _, g := range groups {
		span := flow.Span(g)
		if len(current) > 0 && span.Bottom > threshold {
			pages = append(pages, current)
			current = nil
			threshold = span.Top + usable
		}
		current = append(current, g)
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	plan := newPlan(pages, assign(pages))
	plan.Mode = Automatic
	return plan
}

// PaginateManual 按目标页数做两阶段装箱。
//
// 第一阶段把页眉放入第一个桶，钉选段落的首个组放入钉选页对应的桶（越界时收敛）；
// 钉选段落的后续组从上一个组所在的桶开始首次适配，其余组按文档顺序从第一个桶开始首次适配：
// 桶为空或放入后不超过 usable 即接受，否则放入最后一个桶。
// 第二阶段按 usable 把每个桶拆成实际页面，每个桶至少占一页（空桶输出空页），
// 因此钉选页码与物理页码一致；实际页数超过目标时 Overflowed 为 true。
func PaginateManual(groups []Group, flow Flow, usable float64, target int, pins PinMap) *Plan {
	if target < 1 {
		target = 1
	}
	type slot struct {
		order int
		group Group
	}
	buckets := make([][]slot, target)
	heights := make([]float64, target)
	put := func(b, order int, g Group) {
		buckets[b] = append(buckets[b], slot{order: order, group: g})
		heights[b] += flow.Span(g).Height()
	}
	firstFit := func(g Group, from int) int {
		h := flow.Span(g).Height()
		for b := from; b < target; b++ {
			if len(buckets[b]) == 0 || heights[b]+h <= usable {
				return b
			}
		}
		return target - 1
	}

	// last 记录钉选段落最近放入的桶。
	last := map[string]int{}
	var follow, rest []int
	for i, g := range groups {
		if g.IsHeader() {
			put(0, i, g)
			continue
		}
		page, ok := pins[g.Section]
		if !ok {
			rest = append(rest, i)
			continue
		}
		if _, seen := last[g.Section]; seen {
			follow = append(follow, i)
			continue
		}
		b := clamp(page-1, 0, target-1)
		put(b, i, g)
		last[g.Section] = b
	}
	for _, i := range follow {
		g := groups[i]
		b := firstFit(g, last[g.Section])
		put(b, i, g)
		last[g.Section] = b
	}
	for _, i := range rest {
		g := groups[i]
		put(firstFit(g, 0), i, g)
	}

	var pages [][]Group
	for _, bucket := range buckets {
		// 桶内保持文档顺序，页眉因此总在首页顶部。
		sort.SliceStable(bucket, func(a, b int) bool { return bucket[a].order < bucket[b].order })
		var current []Group
		var height float64
		for _, s := range bucket {
			h := flow.Span(s.group).Height()
			if len(current) > 0 && height+h > usable {
				pages = append(pages, current)
				current, height = nil, 0
			}
			current = append(current, s.group)
			height += h
		}
		pages = append(pages, current)
	}

	plan := newPlan(pages, assign(pages))
	plan.Mode = Manual
	plan.TargetPages = target
	plan.Overflowed = len(pages) > target
	return plan
}

// assign 记录每个段落标识首次出现的页码（从 1 开始）。
func assign(pages [][]Group) Assignment {
	out := Assignment{}
	for i, page := range pages {
		for _, g := range page {
			if _, ok := out[g.Section]; !ok {
				out[g.Section] = i + 1
			}
		}
	}
	return out
}
