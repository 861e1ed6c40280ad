// Command pineda trains a recurrent network described by a JSON configuration file
// and writes the error trace and the trained responses to an output directory.
//
// Usage:
//
//	pineda configfile logdir [seed]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	pineda "github.com/stuartwilson/Pineda"
	"github.com/stuartwilson/Pineda/internal/config"
	"github.com/stuartwilson/Pineda/internal/dataset"
	"github.com/stuartwilson/Pineda/internal/results"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pineda configfile logdir [seed]")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 2 || flag.NArg() > 3 {
		flag.Usage()
		os.Exit(2)
	}

	seed := time.Now().UnixNano()
	if flag.NArg() == 3 {
		s, err := strconv.ParseInt(flag.Arg(2), 10, 64)
		if err != nil {
			log.Printf("invalid seed %q: %v", flag.Arg(2), err)
			os.Exit(2)
		}
		seed = s
	}

	if err := run(flag.Arg(0), flag.Arg(1), seed); err != nil {
		log.Println("error:", err)
		os.Exit(1)
	}
}

// run loads the configuration and dataset, trains, tests and stores the results
func run(configPath, logDir string, seed int64) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := results.OpenLog(logDir)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := log.New(io.MultiWriter(os.Stderr, logFile), "", log.LstdFlags)
	logger.Printf("config %s, seed %d", configPath, seed)

	m, err := dataset.Load(conf.MapFileName)
	if err != nil {
		return err
	}
	patterns, err := m.Patterns(len(conf.InputNodes), len(conf.OutputNodes))
	if err != nil {
		return errors.Wrapf(err, "map %s", conf.MapFileName)
	}

	net, err := conf.Build()
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(seed))
	if err := net.RandomizeWeights(rng, conf.WeightMin, conf.WeightMax); err != nil {
		return err
	}
	tr, err := pineda.NewTrainer(net, rng, conf.InputNodes, conf.OutputNodes, patterns)
	if err != nil {
		return err
	}
	tr.Logger = logger
	logger.Printf("%d nodes, %d edges, %d patterns", net.NumNodes(), net.NumEdges(), len(patterns))

	errs, err := tr.Run(conf.T, conf.ErrorSamplePeriod)
	if err != nil {
		return err
	}
	logger.Printf("trained %d epochs: best error %g, %d rollbacks, %d/%d unsettled forward/backward relaxations",
		tr.Stats.Epochs, tr.ErrMin(), tr.Stats.Rollbacks, tr.Stats.ForwardUnsettled, tr.Stats.BackwardUnsettled)

	response := tr.Test()
	nOut := len(conf.OutputNodes)
	for i, p := range patterns {
		for j, target := range p.Output {
			fmt.Printf("target=%g, output=%g\n", target, response[i*nOut+j])
		}
	}

	return results.Write(logDir, results.Result{Error: errs, Response: response})
}
