// Package file reads flow parameters from a YAML or JSON document.
//
// The document's top-level keys are parameter names (botName, contextData,
// steps, ...). An optional "items" list holds per-item overrides for batch
// execution:
//
//	botName: Manu
//	steps:
//	  step:
//	    - stepId: abertura
//	items:
//	  - contextData: {cliente: Maria}
//	  - contextData: {cliente: João}
package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"gopkg.in/yaml.v3"
)

// ItemsKey holds the per-item overrides in a flow document.
const ItemsKey = "items"

// Source implements ports.ParameterSource and ports.ItemCounter on top of a
// parsed flow document.
type Source struct {
	Path string
	mem  *memory.Source
}

// Open reads and parses the flow document at path.
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow %s: %w", path, err)
	}
	src, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse flow %s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

// Parse decodes a flow document. JSON is accepted since it is valid YAML.
func Parse(r io.Reader) (*Source, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}

	rawItems, hasItems := doc[ItemsKey]
	delete(doc, ItemsKey)

	mem := memory.NewSource(doc)
	if hasItems {
		list, ok := rawItems.([]any)
		if !ok {
			return nil, fmt.Errorf("%q must be a list, got %T", ItemsKey, rawItems)
		}
		items := make([]map[string]any, len(list))
		for i, it := range list {
			m, ok := it.(map[string]any)
			if !ok && it != nil {
				return nil, fmt.Errorf("%s[%d] must be a mapping, got %T", ItemsKey, i, it)
			}
			items[i] = m
		}
		mem = memory.NewItems(items...)
		for k, v := range doc {
			mem.Set(k, v)
		}
	}
	return &Source{mem: mem}, nil
}

// Get implements ports.ParameterSource.
func (s *Source) Get(ctx context.Context, name string, itemIndex int, def any) (any, error) {
	return s.mem.Get(ctx, name, itemIndex, def)
}

// Items implements ports.ItemCounter.
func (s *Source) Items(ctx context.Context) (int, error) {
	return s.mem.Items(ctx)
}
