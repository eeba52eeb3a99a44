package alloppnet

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

const (
	Diploid    = 2
	Tetraploid = 4
)

//Individual is one sampled organism and the names its sequences carry in every gene tree
type Individual struct {
	Name      string
	Sequences []string
}

//Species is a named species of ploidy 2 or 4 with its sampled individuals
type Species struct {
	Name        string
	Ploidy      int
	Individuals []Individual
}

//Genomes will return the number of genomes (spseqs) the species contributes
func (s Species) Genomes() int {
	if s.Ploidy == Tetraploid {
		return 2
	}
	return 1
}

// SpSeq is a (species, genome) slot: one tip of the mullab tree.
type SpSeq struct {
	Species int
	Genome  int
}

type seqRef struct {
	species    int
	individual int // index into SpeciesMap.tetIndividuals for tetraploids, -1 otherwise
	slot       int
}

//SpeciesMap indexes species, their spseqs and the sequences of every individual
type SpeciesMap struct {
	species        []Species
	spseqs         []SpSeq
	firstSpSeq     []int
	byName         map[string]int
	sequences      map[string]seqRef
	tetIndividuals []string
}

//NewSpeciesMap will validate the species list and index every sequence name
func NewSpeciesMap(species []Species) (*SpeciesMap, error) {
	sm := &SpeciesMap{
		species:   species,
		byName:    make(map[string]int),
		sequences: make(map[string]seqRef),
	}
	for i, sp := range species {
		if sp.Ploidy != Diploid && sp.Ploidy != Tetraploid {
			return nil, errors.Errorf("species %s has unsupported ploidy %d", sp.Name, sp.Ploidy)
		}
		if _, dup := sm.byName[sp.Name]; dup {
			return nil, errors.Errorf("species %s listed twice", sp.Name)
		}
		sm.byName[sp.Name] = i
		sm.firstSpSeq = append(sm.firstSpSeq, len(sm.spseqs))
		for g := 0; g < sp.Genomes(); g++ {
			sm.spseqs = append(sm.spseqs, SpSeq{Species: i, Genome: g})
		}
		for _, ind := range sp.Individuals {
			ref := seqRef{species: i, individual: -1}
			if sp.Ploidy == Tetraploid {
				if len(ind.Sequences) != 2 {
					return nil, errors.Errorf("tetraploid individual %s needs 2 sequences, has %d",
						ind.Name, len(ind.Sequences))
				}
				ref.individual = len(sm.tetIndividuals)
				sm.tetIndividuals = append(sm.tetIndividuals, ind.Name)
			} else if len(ind.Sequences) == 0 {
				return nil, errors.Errorf("individual %s has no sequences", ind.Name)
			}
			for slot, seq := range ind.Sequences {
				if _, dup := sm.sequences[seq]; dup {
					return nil, errors.Errorf("sequence %s listed twice", seq)
				}
				r := ref
				if sp.Ploidy == Tetraploid {
					r.slot = slot
				}
				sm.sequences[seq] = r
			}
		}
	}
	return sm, nil
}

// SpSeqCount is the number of mullab tips.
func (sm *SpeciesMap) SpSeqCount() int {
	return len(sm.spseqs)
}

// SpSeq returns the slot with index i.
func (sm *SpeciesMap) SpSeq(i int) SpSeq {
	return sm.spseqs[i]
}

// Species returns the species with index i.
func (sm *SpeciesMap) Species(i int) Species {
	return sm.species[i]
}

// SpeciesCount is the number of species.
func (sm *SpeciesMap) SpeciesCount() int {
	return len(sm.species)
}

// TetraploidIndividualCount is the number of individuals with an assignment bit.
func (sm *SpeciesMap) TetraploidIndividualCount() int {
	return len(sm.tetIndividuals)
}

//SpeciesIndex will look up a species by name
func (sm *SpeciesMap) SpeciesIndex(name string) (int, error) {
	i, ok := sm.byName[name]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownSpecies, "species %q", name)
	}
	return i, nil
}

//SpSeqIndex will return the spseq index of genome g of species sp
func (sm *SpeciesMap) SpSeqIndex(sp, g int) int {
	return sm.firstSpSeq[sp] + g
}

//SpSeqName will return a readable label such as "X" or "X.1"
func (sm *SpeciesMap) SpSeqName(i int) string {
	ss := sm.spseqs[i]
	sp := sm.species[ss.Species]
	if sp.Ploidy == Diploid {
		return sp.Name
	}
	if ss.Genome == 0 {
		return sp.Name + ".0"
	}
	return sp.Name + ".1"
}

//DiploidUnion will return the spseq union of the named diploid species
func (sm *SpeciesMap) DiploidUnion(names ...string) (*bitset.BitSet, error) {
	u := bitset.New(uint(sm.SpSeqCount()))
	for _, n := range names {
		sp, err := sm.SpeciesIndex(n)
		if err != nil {
			return nil, err
		}
		if sm.species[sp].Ploidy != Diploid {
			return nil, errors.Errorf("species %s is not diploid", n)
		}
		u.Set(uint(sm.SpSeqIndex(sp, 0)))
	}
	return u, nil
}

//spseqOf will map a sequence to its spseq given the per-individual assignment flips
func (sm *SpeciesMap) spseqOf(seq string, flips []bool) (int, error) {
	ref, ok := sm.sequences[seq]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownSequence, "sequence %q", seq)
	}
	g := ref.slot
	if ref.individual >= 0 && flips[ref.individual] {
		g = 1 - g
	}
	return sm.SpSeqIndex(ref.species, g), nil
}

// tetIndividual returns the assignment index of a sequence's individual, or -1.
func (sm *SpeciesMap) tetIndividual(name string) int {
	for i, n := range sm.tetIndividuals {
		if n == name {
			return i
		}
	}
	return -1
}
