package alloppnet

//Statistic is a read-only summary computed on demand from the current network
type Statistic interface {
	Name() string
	Dimension() int
	Value(i int) float64
}

//HybridizationCount is the number of hybridization events, one per tetraploid subtree
type HybridizationCount struct{ Network *Network }

func (s HybridizationCount) Name() string      { return "hybridizations" }
func (s HybridizationCount) Dimension() int    { return 1 }
func (s HybridizationCount) Value(int) float64 { return float64(s.Network.TetraTreeCount()) }

//DanglingLegCount is the number of legs not attached to a sampled diploid branch
type DanglingLegCount struct{ Network *Network }

func (s DanglingLegCount) Name() string      { return "danglingLegs" }
func (s DanglingLegCount) Dimension() int    { return 1 }
func (s DanglingLegCount) Value(int) float64 { return float64(s.Network.DanglingLegCount()) }

//NetworkHeight is the height of the mullab root
type NetworkHeight struct{ Network *Network }

func (s NetworkHeight) Name() string      { return "networkHeight" }
func (s NetworkHeight) Dimension() int    { return 1 }
func (s NetworkHeight) Value(int) float64 { return s.Network.MulLabTree().RootHeight() }

//HybridHeights reports each tetraploid subtree's hybridization height
type HybridHeights struct{ Network *Network }

func (s HybridHeights) Name() string   { return "hybridHeight" }
func (s HybridHeights) Dimension() int { return s.Network.TetraTreeCount() }

// Value returns the hybridization height of tetraploid subtree i.
func (s HybridHeights) Value(i int) float64 {
	return s.Network.TetraTree(i).HybridHeight
}

//Statistics will return the standard statistics of a network
func Statistics(net *Network) []Statistic {
	return []Statistic{
		HybridizationCount{net},
		DanglingLegCount{net},
		NetworkHeight{net},
		HybridHeights{net},
	}
}
