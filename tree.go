package alloppnet

import (
	"strconv"
	"strings"
)

//Node is one node of an arena tree. Parent is -1 at the root.
type Node struct {
	Name     string
	Parent   int
	Children []int
	Height   float64
}

//Tree is a rooted tree stored as an arena of nodes addressed by index
type Tree struct {
	Nodes []Node
	Root  int
}

//NewTree will return an empty tree
func NewTree() *Tree {
	return &Tree{Root: -1}
}

//AddNode will append a node with the given children and return its index
func (t *Tree) AddNode(name string, height float64, children ...int) int {
	i := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Name: name, Parent: -1, Height: height, Children: append([]int(nil), children...)})
	for _, c := range children {
		t.Nodes[c].Parent = i
	}
	t.Root = i
	return i
}

// Len is the number of nodes.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// IsTip reports whether node i has no children.
func (t *Tree) IsTip(i int) bool {
	return len(t.Nodes[i].Children) == 0
}

// Height returns the height of node i.
func (t *Tree) Height(i int) float64 {
	return t.Nodes[i].Height
}

// Parent returns the parent of node i, or -1.
func (t *Tree) Parent(i int) int {
	return t.Nodes[i].Parent
}

// Children returns the children of node i.
func (t *Tree) Children(i int) []int {
	return t.Nodes[i].Children
}

//Postorder will return node indices children first, root last
func (t *Tree) Postorder() []int {
	if t.Root < 0 {
		return nil
	}
	out := make([]int, 0, len(t.Nodes))
	type frame struct {
		node    int
		visited bool
	}
	stack := []frame{{node: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.visited {
			out = append(out, f.node)
			continue
		}
		stack = append(stack, frame{node: f.node, visited: true})
		ch := t.Nodes[f.node].Children
		for i := len(ch) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: ch[i]})
		}
	}
	return out
}

//Tips will return the tip indices in postorder
func (t *Tree) Tips() (tips []int) {
	for _, n := range t.Postorder() {
		if t.IsTip(n) {
			tips = append(tips, n)
		}
	}
	return
}

//InternalNodes will return the indices of nodes with children, in postorder
func (t *Tree) InternalNodes() (in []int) {
	for _, n := range t.Postorder() {
		if !t.IsTip(n) {
			in = append(in, n)
		}
	}
	return
}

// TipCount is the number of tips.
func (t *Tree) TipCount() int {
	return len(t.Tips())
}

//FindTip will return the index of the tip with the given name, or -1
func (t *Tree) FindTip(name string) int {
	for i := range t.Nodes {
		if t.IsTip(i) && t.Nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{Nodes: make([]Node, len(t.Nodes)), Root: t.Root}
	for i, n := range t.Nodes {
		n.Children = append([]int(nil), n.Children...)
		c.Nodes[i] = n
	}
	return c
}

//TreeLength will return the sum of all branch lengths
func (t *Tree) TreeLength() float64 {
	l := 0.
	for i, n := range t.Nodes {
		if n.Parent >= 0 && i != t.Root {
			l += t.Nodes[n.Parent].Height - n.Height
		}
	}
	return l
}

//Newick will write the subtree below node i with branch lengths derived from heights
func (t *Tree) Newick(i int, label func(int) string) string {
	var b strings.Builder
	t.newick(&b, i, label)
	return b.String()
}

func (t *Tree) newick(b *strings.Builder, i int, label func(int) string) {
	n := t.Nodes[i]
	if len(n.Children) > 0 {
		b.WriteString("(")
		for j, c := range n.Children {
			if j > 0 {
				b.WriteString(",")
			}
			t.newick(b, c, label)
		}
		b.WriteString(")")
	}
	b.WriteString(label(i))
	if n.Parent >= 0 {
		b.WriteString(":" + strconv.FormatFloat(t.Nodes[n.Parent].Height-n.Height, 'f', -1, 64))
	}
}
