// knn-search loads knowledge node records from a flat file, activates the
// given tags and propagates activation with the chosen strategy, printing
// every node that fires and the tags that become active.
//
// Usage:
//
//	knn-search --data animal.txt --activate "Animal(dog)" --strategy cascade
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/config"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/knn"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var activate stringList
	var (
		dataPath = flag.String("data", "", "Node record file (required)")
		strategy = flag.String("strategy", "direct", "Propagation strategy: direct or cascade")
		depth    = flag.Int("depth", 0, "Cascade depth cap (0 = unbounded)")
	)
	flag.Var(&activate, "activate", "Tag to activate (repeatable)")
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}
	if len(activate) == 0 {
		log.Fatal("--activate required")
	}

	records, err := config.LoadNodeRecords(*dataPath)
	if err != nil {
		log.Fatalf("load node records: %v", err)
	}

	network := knn.NewNetwork(knn.Options{})
	if err := network.LoadRecords(records); err != nil {
		log.Fatalf("build network: %v", err)
	}
	log.Printf("loaded %d knowledge nodes", len(network.Nodes()))

	for _, s := range activate {
		t, err := tags.Parse(s)
		if err != nil {
			log.Fatalf("activate %q: %v", s, err)
		}
		network.AddActiveTag(t)
	}

	var searcher knn.Searcher
	switch *strategy {
	case "direct":
		searcher = knn.DirectSearcher{}
	case "cascade":
		searcher = knn.CascadeSearcher{MaxDepth: *depth}
	default:
		log.Fatalf("unknown strategy %q", *strategy)
	}

	newly := network.Search(searcher)
	if len(newly) == 0 {
		fmt.Println("nothing fired")
		return
	}

	fmt.Println("newly active:")
	for _, t := range newly {
		fmt.Printf("  %s\n", t)
	}
	fmt.Println("fired nodes:")
	for _, node := range network.Nodes() {
		if node.IsFired() {
			fmt.Printf("  %s\n", node)
		}
	}
}
