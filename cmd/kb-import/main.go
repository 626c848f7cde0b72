// kb-import reads knowledge notes — plain text or HTML, one teach sentence
// per line — runs them through the expert system's teach parser and persists
// the resulting facts and rules into a SQLite knowledge base.
//
// Usage:
//
//	kb-import --db kb.sqlite notes.txt diet.html
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/internal/htmltext"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus"
	sqlitestore "github.com/Elsie4ever/prometheus-ai/pkg/prometheus/store/sqlite"
)

func main() {
	dbPath := flag.String("db", "", "SQLite knowledge base to write (required)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if flag.NArg() == 0 {
		log.Fatal("at least one notes file required")
	}

	ctx := context.Background()
	st, err := sqlitestore.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	p := prometheus.New(prometheus.Options{Store: st})
	defer p.Close()

	if err := p.LoadKnowledge(ctx); err != nil {
		log.Fatalf("load knowledge: %v", err)
	}

	taught, skipped := 0, 0
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}

		text := string(data)
		if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm") {
			text = htmltext.Strip(text)
		}

		for _, sentence := range htmltext.Sentences(text) {
			if err := p.Teach(sentence); err != nil {
				log.Printf("Warning: skipping %s: %v", path, err)
				skipped++
				continue
			}
			taught++
		}
	}

	if err := p.SaveLearned(ctx); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("imported %d sentences (%d skipped) into %s", taught, skipped, *dbPath)
}
