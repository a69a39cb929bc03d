package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"
)

type options struct {
	n         int
	common    bool
	wordsFile string
	mode      string
	table     string
	any       bool
	keep      int
	seed      int64
	workers   int
	top       int
	simulate  bool
	show      string
	progress  bool
	pairCost  float64
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var opts options
	flag.IntVar(&opts.n, "n", 200, "vocabulary size (0 for every word)")
	flag.BoolVar(&opts.common, "common", false, "use only common words")
	flag.StringVar(&opts.wordsFile, "words", "", "read the vocabulary from `file`, one word per line")
	flag.StringVar(&opts.mode, "mode", "exact", "exact: score every word; narrow: funnel large vocabularies first")
	flag.StringVar(&opts.table, "table", "pattern", "validity table for exact mode: pattern or cube")
	flag.BoolVar(&opts.any, "any", false, "consider guessing words that can't be the answer")
	flag.IntVar(&opts.keep, "keep", 30, "guesses kept per chunk in narrow mode")
	flag.Int64Var(&opts.seed, "seed", 1, "random seed for shuffling and fingerprints")
	flag.IntVar(&opts.workers, "workers", workers(), "parallel solvers")
	flag.IntVar(&opts.top, "top", 10, "number of guesses to print")
	flag.BoolVar(&opts.simulate, "simulate", false, "play the best opener against every answer")
	flag.StringVar(&opts.show, "show", "", "print the clues each top guess gives for `answer`")
	flag.BoolVar(&opts.progress, "progress", false, "show progress bars")
	flag.Float64Var(&opts.pairCost, "pair-cost", defaultPairCost, fmt.Sprintf("cost charged for two remaining candidates (%v is what play averages)", exactPairCost))
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalln(err)
		}
	}

	err := run(opts, os.Stdout)
	pprof.StopCPUProfile()
	if err != nil {
		log.Fatalln(err)
	}
}

func run(opts options, out io.Writer) error {
	vocab, err := loadVocabulary(opts.wordsFile, opts.n, opts.common)
	if err != nil {
		return err
	}
	if opts.wordsFile != "" && opts.common {
		log.Println("-common ignored with -words")
	}
	kind, err := parseTableKind(opts.table)
	if err != nil {
		return err
	}
	if opts.top < 0 {
		return fmt.Errorf("top must not be negative, got %v", opts.top)
	}
	solverOpts := solverOptions{seed: opts.seed, pairCost: opts.pairCost}
	if opts.any {
		solverOpts.strategy = anyWord
	}
	evalCfg := defaultEvalConfig()
	evalCfg.table = kind
	evalCfg.solver = solverOpts
	evalCfg.workers = opts.workers
	var progress io.Writer
	if opts.progress {
		progress = os.Stderr
	}

	log.Printf("ranking %v words (%v mode)", len(vocab), opts.mode)
	start := time.Now()
	var results []Ranked
	switch opts.mode {
	case "exact":
		results, err = evaluate(vocab, vocab, evalCfg)
	case "narrow":
		cfg := defaultNarrowConfig()
		cfg.Keep = opts.keep
		cfg.Seed = opts.seed
		cfg.Workers = opts.workers
		cfg.Progress = progress
		cfg.Solver = solverOpts
		results, err = narrow(vocab, cfg)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
	if err != nil {
		return err
	}
	log.Printf("ranked %v guesses in %v", len(results), time.Since(start))

	var answer Word
	if opts.show != "" {
		if answer, err = parseWord(opts.show); err != nil {
			return err
		}
	}
	for i, r := range results[:min(opts.top, len(results))] {
		fmt.Fprintf(out, "%3d. %v %.6f", i+1, r.Word, r.Score)
		if opts.show != "" {
			guess, err := parseWord(r.Word)
			if err != nil {
				return err
			}
			clues := feedback(guess, answer)
			fmt.Fprintf(out, "  %v", colored(r.Word, clues))
			if solved(clues) {
				fmt.Fprint(out, " solved")
			}
		}
		fmt.Fprintln(out)
	}

	if opts.simulate && len(results) > 0 {
		sim, err := simulate(vocab, results[0].Word, evalCfg, progress)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sim)
	}
	return nil
}
