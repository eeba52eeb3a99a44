package main

import (
	"fmt"
	"os"
	"time"

	"alloppnet"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//model is everything built from one config file
type model struct {
	cfg        *config
	network    *alloppnet.Network
	coalescent *alloppnet.MSCoalescent
	prior      *alloppnet.NetworkPrior
	popPrior   *alloppnet.PopSizePrior
	bdPrior    *alloppnet.BirthDeathPrior
}

func buildModel(path string, opts alloppnet.Options) (*model, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if opts.Population, err = cfg.population(); err != nil {
		return nil, err
	}
	units, err := alloppnet.ParseUnits(orDefault(cfg.Units, "substitutions"))
	if err != nil {
		return nil, err
	}
	sm, err := cfg.speciesMap()
	if err != nil {
		return nil, err
	}
	net, err := cfg.network(sm, opts)
	if err != nil {
		return nil, err
	}
	genes, err := cfg.geneTrees(sm)
	if err != nil {
		return nil, err
	}
	coal, err := alloppnet.InitMSCoalescent(net, genes, opts)
	if err != nil {
		return nil, err
	}
	rate, err := alloppnet.NewPositiveParameter("hybridRate", cfg.Prior.Rate)
	if err != nil {
		return nil, err
	}
	scale, err := alloppnet.NewPositiveParameter("popScale", cfg.Prior.PopScale)
	if err != nil {
		return nil, err
	}
	m := &model{
		cfg:        cfg,
		network:    net,
		coalescent: coal,
		prior:      alloppnet.InitNetworkPrior(net, rate, units),
		popPrior:   alloppnet.InitPopSizePrior(net, cfg.Prior.PopShape, scale),
	}
	if m.bdPrior, err = cfg.birthDeathPrior(net); err != nil {
		return nil, err
	}
	return m, nil
}

//birthDeathPrior will build the diploid tree prior, or return nil when no birth rate is configured
func (c *config) birthDeathPrior(net *alloppnet.Network) (*alloppnet.BirthDeathPrior, error) {
	if c.Prior.Birth <= 0 {
		return nil, nil
	}
	if !(c.Prior.Death < c.Prior.Birth) {
		return nil, errors.Errorf("death rate %g must be below birth rate %g", c.Prior.Death, c.Prior.Birth)
	}
	birth, err := alloppnet.NewPositiveParameter("birthRate", c.Prior.Birth)
	if err != nil {
		return nil, err
	}
	death, err := alloppnet.NewParameter("deathRate", 0, c.Prior.Birth, c.Prior.Death)
	if err != nil {
		return nil, err
	}
	return alloppnet.InitBirthDeathPrior(net, birth, death, c.Prior.Rho)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func newLogLikeCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "loglike <config.toml>",
		Short: "print the composite gene tree likelihood, priors and statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			start := time.Now()
			m, err := buildModel(args[0], alloppnet.Options{Debug: *verbose, Logger: logger})
			if err != nil {
				logger.Error("building model", "err", err)
				return err
			}
			out := os.Stdout
			for _, r := range m.coalescent.PerGene() {
				fmt.Fprintf(out, "gene\t%s\t%t\t%g\n", r.Name, r.Compatible, r.LogLike)
			}
			fmt.Fprintf(out, "logLikelihood\t%g\n", m.coalescent.LogLikelihood())
			fmt.Fprintf(out, "networkPrior\t%g\n", m.prior.LogLikelihood())
			fmt.Fprintf(out, "popSizePrior\t%g\n", m.popPrior.LogLikelihood())
			if m.bdPrior != nil {
				fmt.Fprintf(out, "birthDeathPrior\t%g\n", m.bdPrior.LogLikelihood())
			}
			for _, s := range alloppnet.Statistics(m.network) {
				for i := 0; i < s.Dimension(); i++ {
					fmt.Fprintf(out, "%s%d\t%g\n", s.Name(), i, s.Value(i))
				}
			}
			logger.Infof("evaluated %d gene trees (%s)", len(m.coalescent.GeneTrees), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func newMulLabCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "mullab <config.toml>",
		Short: "print the multiply-labelled tree of the network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			m, err := buildModel(args[0], alloppnet.Options{Debug: *verbose, Logger: logger})
			if err != nil {
				logger.Error("building model", "err", err)
				return err
			}
			fmt.Println(m.network.MulLabTree().Newick())
			return nil
		},
	}
}
