// prometheus-think loads a knowledge base, asserts facts from the command
// line, runs the expert system to quiescence (or a cycle cap) and prints the
// activated recommendations with their explanation cards.
//
// Usage:
//
//	prometheus-think --kb kb.yaml --assert "Animal(penguin)" --cycles 5
//	prometheus-think --db kb.sqlite --learn --save
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/config"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/es"
	sqlitestore "github.com/Elsie4ever/prometheus-ai/pkg/prometheus/store/sqlite"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var asserts stringList
	var (
		kbPath = flag.String("kb", "", "YAML knowledge base to load")
		dbPath = flag.String("db", "", "SQLite knowledge base to load")
		cycles = flag.Int("cycles", 0, "Cycle cap (0 = run to quiescence)")
		learn  = flag.Bool("learn", false, "Generate a proven rule from the run")
		save   = flag.Bool("save", false, "Persist learned facts and rules back to --db")
	)
	flag.Var(&asserts, "assert", "Fact or recommendation to assert (repeatable)")
	flag.Parse()

	if *kbPath == "" && *dbPath == "" {
		log.Fatal("--kb or --db required")
	}
	if *save && *dbPath == "" {
		log.Fatal("--save requires --db")
	}

	ctx := context.Background()
	opts := prometheus.Options{}

	if *dbPath != "" {
		st, err := sqlitestore.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		opts.Store = st
	}

	p := prometheus.New(opts)
	defer p.Close()

	if err := p.LoadKnowledge(ctx); err != nil {
		log.Fatalf("load knowledge: %v", err)
	}

	if *kbPath != "" {
		if err := loadYAML(p, *kbPath); err != nil {
			log.Fatalf("load kb: %v", err)
		}
	}

	for _, s := range asserts {
		t, err := tags.Parse(s)
		if err != nil {
			log.Fatalf("assert %q: %v", s, err)
		}
		p.ES().AddTag(t)
	}

	cards := p.ThinkAndExplain(es.ThinkOptions{MaxCycles: *cycles, GenerateRule: *learn})
	if len(cards) == 0 {
		fmt.Println("no recommendations")
	}
	for _, card := range cards {
		fmt.Printf("%s  [%s]\n", card.Title, card.ID)
		for _, b := range card.Bullets {
			fmt.Printf("  - %s\n", b)
		}
		for _, f := range card.DerivedFacts {
			fmt.Printf("  derived %s\n", f)
		}
	}

	if *save {
		if err := p.SaveLearned(ctx); err != nil {
			log.Fatalf("save learned: %v", err)
		}
	}
}

func loadYAML(p *prometheus.Prometheus, path string) error {
	kb, err := config.LoadKnowledgeBase(path)
	if err != nil {
		return err
	}
	facts, err := kb.TypedFacts()
	if err != nil {
		return err
	}
	for _, f := range facts {
		p.ES().AddFact(f)
	}
	rules, err := kb.TypedRules()
	if err != nil {
		return err
	}
	for _, r := range rules {
		p.ES().AddReadyRule(r)
	}
	for _, s := range kb.Sentences {
		if err := p.Teach(s); err != nil {
			return err
		}
	}
	return nil
}
