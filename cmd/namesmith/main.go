// Command namesmith generates pronounceable name-like anagrams of a
// phrase.
//
//	namesmith "margaret thatcher"
//	namesmith -n 5 -template "First Last" -seed 7 "ernest malvino"
//	namesmith -first Rigel "pride goes before the fall"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lexicraft/namesmith/pkg/namesmith"
	"github.com/lexicraft/namesmith/pkg/namesmith/template"
)

func main() {
	var (
		n          = flag.Int("n", 15, "Number of results")
		dataset    = flag.String("dataset", "", "Training dataset (default: manifest default)")
		tmplLabel  = flag.String("template", "", "Use a single template by label")
		first      = flag.String("first", "", "Fix the first name")
		last       = flag.String("last", "", "Fix the last name (supports Smith-Jones and -Jones forms)")
		seed       = flag.Int64("seed", 0, "Random seed (0: derive from time)")
		tempMin    = flag.Float64("temp-min", 0, "Starting sampling temperature")
		tempMax    = flag.Float64("temp-max", 0, "Ending sampling temperature")
		allowWords = flag.Bool("allow-words", false, "Allow segments that are common English words")
		verbose    = flag.Bool("verbose", false, "Show scores, templates, and verification")
		noCache    = flag.Bool("no-cache", false, "Retrain models, skipping the cache")
		dataDir    = flag.String("data", "data", "Data directory with names.yaml and name lists")
		cachePath  = flag.String("cache", "", "Model cache path (default: <data>/.cache/models.db)")
		listTmpls  = flag.Bool("list-templates", false, "List available templates and exit")
	)
	flag.Parse()

	if *listTmpls {
		for _, t := range template.List() {
			fmt.Printf("%-32s %d-%d letters\n", t.Label, t.TotalMin(), t.TotalMax())
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: namesmith [flags] <phrase>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	phrase := flag.Arg(0)

	ctx := context.Background()
	gen, err := namesmith.Open(ctx, namesmith.OpenOptions{
		DataDir:   *dataDir,
		Dataset:   *dataset,
		CachePath: *cachePath,
		NoCache:   *noCache,
	})
	if err != nil {
		log.Fatalf("load models: %v", err)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	resp, err := gen.Generate(namesmith.Request{
		Phrase:     phrase,
		N:          *n,
		Template:   *tmplLabel,
		FixedFirst: *first,
		FixedLast:  *last,
		TempMin:    *tempMin,
		TempMax:    *tempMax,
		AllowWords: *allowWords,
		Seed:       runSeed,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	for _, w := range resp.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if resp.Infeasible {
		fmt.Fprintln(os.Stderr, "no names could be generated from this phrase")
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("run %s, seed %d\n", resp.RunID, runSeed)
	}
	for i, r := range resp.Results {
		if *verbose {
			status := "ok"
			if !namesmith.VerifyAnagram(phrase, r.Name) {
				status = "MISMATCH"
			}
			fmt.Printf("%2d. %-36s %8.2f  %-28s %s  [%s]\n",
				i+1, r.Name, r.Score, r.Template, status, strings.Join(r.Segments, " "))
		} else {
			fmt.Printf("%2d. %s\n", i+1, r.Name)
		}
	}
}
