package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ambiyansyah-risyal/reqkit"
)

// config holds defaults applied under command line values.
//
//	headers:
//	  Accept: application/json
//	query:
//	  page: 1
//	  tag: [a, b]
type config struct {
	Headers map[string]string `yaml:"headers"`
	Query   yaml.Node         `yaml:"query"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) headers() reqkit.Headers {
	h := make(reqkit.Headers, len(c.Headers))
	for k, v := range c.Headers {
		h[k] = v
	}
	return h
}

// params decodes the query mapping keeping the order it was written in.
func (c *config) params() (reqkit.Params, error) {
	return paramsFromNode(&c.Query)
}

func paramsFromNode(node *yaml.Node) (reqkit.Params, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("query must be a mapping, line %d", node.Line)
	}

	params := make(reqkit.Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("query %q: %w", node.Content[i].Value, err)
		}
		params = params.Add(node.Content[i].Value, value)
	}
	return params, nil
}

func loadParamsFile(path string) (reqkit.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params file: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse params file %s: %w", path, err)
	}
	return paramsFromNode(&node)
}
