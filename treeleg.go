package alloppnet

import "github.com/bits-and-blooms/bitset"

//TreeLeg is one leg of a tetraploid subtree. FootUnion is the spseq union of the
//diploid branch the leg lands on; an empty union means the leg dangles above the diploid root.
type TreeLeg struct {
	FootUnion *bitset.BitSet
	Height    float64
}

//NewTreeLeg will make a leg landing on the diploid branch with the given union
func NewTreeLeg(footUnion *bitset.BitSet, height float64) *TreeLeg {
	return &TreeLeg{FootUnion: footUnion.Clone(), Height: height}
}

//NewDanglingLeg will make a leg with no diploid attachment
func NewDanglingLeg(height float64) *TreeLeg {
	return &TreeLeg{FootUnion: bitset.New(0), Height: height}
}

// Clone deep-copies the leg.
func (l *TreeLeg) Clone() *TreeLeg {
	return &TreeLeg{FootUnion: l.FootUnion.Clone(), Height: l.Height}
}

// Dangling reports whether the leg has no diploid attachment.
func (l *TreeLeg) Dangling() bool {
	return l.FootUnion.None()
}
