package alloppnet

import (
	"fmt"
	"sort"
)

//LegLink pairs the hip of a tetraploid subtree copy with the place its leg lands on the diploid tree.
//Hip and Foot are node indices into the mullab arena under construction.
type LegLink struct {
	Hip        int
	Foot       int
	FootHeight float64
	done       bool
}

//NewLegLink will make a link that has not yet been converted into a branch
func NewLegLink(hip, foot int, footHeight float64) *LegLink {
	return &LegLink{Hip: hip, Foot: foot, FootHeight: footHeight}
}

// IsDone reports whether the leg has already been converted into a branch.
func (l *LegLink) IsDone() bool {
	return l.done
}

// SetIsDone latches the link. It cannot be cleared.
func (l *LegLink) SetIsDone() {
	l.done = true
}

func (l *LegLink) String() string {
	return fmt.Sprintf("leg(hip=%d foot=%d h=%g done=%t)", l.Hip, l.Foot, l.FootHeight, l.done)
}

//CompareFootHeight orders links by ascending foot height. Equal heights compare equal.
func CompareFootHeight(a, b *LegLink) int {
	switch {
	case a.FootHeight < b.FootHeight:
		return -1
	case a.FootHeight > b.FootHeight:
		return 1
	}
	return 0
}

//SortLegLinks will sort links by foot height, keeping the input order for ties
func SortLegLinks(links []*LegLink) {
	sort.SliceStable(links, func(i, j int) bool {
		return CompareFootHeight(links[i], links[j]) < 0
	})
}

//FootLinks holds every leg that lands on one diploid branch, lowest foot first
type FootLinks struct {
	Foot int
	Hips []*LegLink
}

//NewFootLinks groups links sharing a foot. It panics if the list is empty or the feet differ.
func NewFootLinks(links []*LegLink) *FootLinks {
	if len(links) == 0 {
		panic("alloppnet: FootLinks needs at least one leg")
	}
	foot := links[0].Foot
	for _, l := range links[1:] {
		if l.Foot != foot {
			panic(fmt.Sprintf("alloppnet: FootLinks with mismatched feet %d and %d", foot, l.Foot))
		}
	}
	hips := make([]*LegLink, len(links))
	copy(hips, links)
	SortLegLinks(hips)
	return &FootLinks{Foot: foot, Hips: hips}
}

//GroupByFoot will collect links into FootLinks, ordered by first appearance of each foot
func GroupByFoot(links []*LegLink) []*FootLinks {
	var order []int
	byFoot := make(map[int][]*LegLink)
	for _, l := range links {
		if _, ok := byFoot[l.Foot]; !ok {
			order = append(order, l.Foot)
		}
		byFoot[l.Foot] = append(byFoot[l.Foot], l)
	}
	feet := make([]*FootLinks, 0, len(order))
	for _, f := range order {
		feet = append(feet, NewFootLinks(byFoot[f]))
	}
	return feet
}
