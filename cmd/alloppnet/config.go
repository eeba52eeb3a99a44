package main

import (
	"alloppnet"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type individualConfig struct {
	Name      string   `toml:"name"`
	Sequences []string `toml:"sequences"`
}

type speciesConfig struct {
	Name        string             `toml:"name"`
	Ploidy      int                `toml:"ploidy"`
	Individuals []individualConfig `toml:"individuals"`
}

type legConfig struct {
	Foot   []string `toml:"foot"`
	Height float64  `toml:"height"`
}

type tetraConfig struct {
	Newick       string      `toml:"newick"`
	HybridHeight float64     `toml:"hybrid_height"`
	LegPops      []float64   `toml:"leg_pops"`
	Legs         []legConfig `toml:"legs"`
}

type geneConfig struct {
	Name   string `toml:"name"`
	Newick string `toml:"newick"`
}

type priorConfig struct {
	Rate     float64 `toml:"rate"`
	PopShape float64 `toml:"pop_shape"`
	PopScale float64 `toml:"pop_scale"`
	Birth    float64 `toml:"birth"`
	Death    float64 `toml:"death"`
	Rho      float64 `toml:"rho"`
}

type config struct {
	Units       string          `toml:"units"`
	DefaultPop  float64         `toml:"default_pop"`
	GhostPop    float64         `toml:"ghost_pop"`
	Population  string          `toml:"population"`
	Species     []speciesConfig `toml:"species"`
	Diploid     string          `toml:"diploid"`
	Tetraploids []tetraConfig   `toml:"tetraploid"`
	Genes       []geneConfig    `toml:"genes"`
	Prior       priorConfig     `toml:"prior"`
}

func loadConfig(path string) (*config, error) {
	var cfg config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if cfg.Prior.Rate == 0 {
		cfg.Prior.Rate = 1
	}
	if cfg.Prior.PopShape == 0 {
		cfg.Prior.PopShape = 2
	}
	if cfg.Prior.PopScale == 0 {
		cfg.Prior.PopScale = 1
	}
	if cfg.Prior.Rho == 0 {
		cfg.Prior.Rho = 1
	}
	return &cfg, nil
}

func (cfg *config) population() (alloppnet.PopulationFunction, error) {
	switch cfg.Population {
	case "", "linear":
		return alloppnet.LinearPopulation{}, nil
	case "exponential":
		return alloppnet.NumericPopulation{Shape: alloppnet.ExponentialSize}, nil
	}
	return nil, errors.Errorf("unknown population function %q", cfg.Population)
}

func (cfg *config) speciesMap() (*alloppnet.SpeciesMap, error) {
	var species []alloppnet.Species
	for _, s := range cfg.Species {
		sp := alloppnet.Species{Name: s.Name, Ploidy: s.Ploidy}
		for _, ind := range s.Individuals {
			sp.Individuals = append(sp.Individuals, alloppnet.Individual{Name: ind.Name, Sequences: ind.Sequences})
		}
		species = append(species, sp)
	}
	return alloppnet.NewSpeciesMap(species)
}

func (cfg *config) network(sm *alloppnet.SpeciesMap, opts alloppnet.Options) (*alloppnet.Network, error) {
	spec := alloppnet.NetworkSpec{DefaultPop: cfg.DefaultPop, GhostPop: cfg.GhostPop}
	if cfg.Diploid != "" {
		t, err := alloppnet.ReadTree(cfg.Diploid)
		if err != nil {
			return nil, errors.Wrap(err, "diploid tree")
		}
		spec.Diploid = t
	}
	for i, tc := range cfg.Tetraploids {
		t, err := alloppnet.ReadTree(tc.Newick)
		if err != nil {
			return nil, errors.Wrapf(err, "tetraploid tree %d", i)
		}
		if len(tc.Legs) != 2 {
			return nil, errors.Errorf("tetraploid tree %d needs 2 legs, has %d", i, len(tc.Legs))
		}
		tt := alloppnet.TetraTree{Tree: t, HybridHeight: tc.HybridHeight}
		copy(tt.LegPops[:], tc.LegPops)
		for g, lc := range tc.Legs {
			if len(lc.Foot) == 0 {
				tt.Legs[g] = alloppnet.NewDanglingLeg(lc.Height)
				continue
			}
			u, err := sm.DiploidUnion(lc.Foot...)
			if err != nil {
				return nil, errors.Wrapf(err, "tetraploid tree %d leg %d", i, g)
			}
			tt.Legs[g] = alloppnet.NewTreeLeg(u, lc.Height)
		}
		spec.Tetraploids = append(spec.Tetraploids, tt)
	}
	return alloppnet.NewNetwork(sm, spec, opts)
}

func (cfg *config) geneTrees(sm *alloppnet.SpeciesMap) ([]*alloppnet.GeneTree, error) {
	var genes []*alloppnet.GeneTree
	for _, gc := range cfg.Genes {
		g, err := alloppnet.ReadGeneTree(gc.Name, gc.Newick, sm)
		if err != nil {
			return nil, err
		}
		genes = append(genes, g)
	}
	return genes, nil
}
