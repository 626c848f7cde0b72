package knn

import (
	"fmt"
	"strconv"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/internalerr"
	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/tags"
)

// NodeRecord is the flat, string-form description of a node that external
// loaders and stores exchange with the network.
type NodeRecord struct {
	Input     string
	Threshold int
	Outputs   []WeightedTag
}

// WeightedTag pairs an output tag string with its weight.
type WeightedTag struct {
	Tag    string
	Weight float64
}

// ParseNodeRecord decodes the token form of a node record: the input tag
// string, an integer threshold, then repeating pairs of output tag string and
// floating-point weight.
func ParseNodeRecord(fields []string) (NodeRecord, error) {
	if len(fields) < 2 {
		return NodeRecord{}, fmt.Errorf("node record needs a tag and a threshold: %w", internalerr.ErrMalformedTag)
	}
	if len(fields)%2 != 0 {
		return NodeRecord{}, fmt.Errorf("node record %q has an output tag without a weight: %w", fields[0], internalerr.ErrMalformedTag)
	}

	threshold, err := strconv.Atoi(fields[1])
	if err != nil {
		return NodeRecord{}, fmt.Errorf("node record %q threshold %q: %w", fields[0], fields[1], internalerr.ErrMalformedTag)
	}

	rec := NodeRecord{Input: fields[0], Threshold: threshold}
	for i := 2; i < len(fields); i += 2 {
		weight, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return NodeRecord{}, fmt.Errorf("node record %q weight %q: %w", fields[0], fields[i+1], internalerr.ErrMalformedTag)
		}
		rec.Outputs = append(rec.Outputs, WeightedTag{Tag: fields[i], Weight: weight})
	}
	return rec, nil
}

// Fields re-encodes the record into its token form.
func (r NodeRecord) Fields() []string {
	fields := []string{r.Input, strconv.Itoa(r.Threshold)}
	for _, out := range r.Outputs {
		fields = append(fields, out.Tag, strconv.FormatFloat(out.Weight, 'g', -1, 64))
	}
	return fields
}

// LoadRecords builds nodes from records and adds them to the network. Tag
// strings parse under the usual grammar; the first malformed record fails the
// whole load and leaves the network with the nodes added so far.
func (n *Network) LoadRecords(records []NodeRecord) error {
	for _, rec := range records {
		node, err := n.nodeFromRecord(rec)
		if err != nil {
			return err
		}
		n.AddNode(node)
	}
	return nil
}

func (n *Network) nodeFromRecord(rec NodeRecord) (*Node, error) {
	input, err := tags.Parse(rec.Input)
	if err != nil {
		return nil, fmt.Errorf("node record input: %w", err)
	}
	outputs := make([]Output, 0, len(rec.Outputs))
	for _, out := range rec.Outputs {
		t, err := tags.Parse(out.Tag)
		if err != nil {
			return nil, fmt.Errorf("node record %q output: %w", rec.Input, err)
		}
		outputs = append(outputs, Output{Tag: t, Weight: out.Weight})
	}
	return NewNode(NodeConfig{
		Input:     input,
		Outputs:   outputs,
		Threshold: float64(rec.Threshold),
		MaxAge:    n.maxAge,
	}), nil
}
