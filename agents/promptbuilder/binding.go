/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"gopkg.in/yaml.v3"
)

type binding interface {
	render(name string) (string, error)
}

type unbound struct{}

func (unbound) render(name string) (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", name)
}

type literal string

func (l literal) render(string) (string, error) {
	return string(l), nil
}

type format int

const (
	formatXML format = iota
	formatJSON
	formatYAML
)

func (f format) String() string {
	return [...]string{"XML", "JSON", "YAML"}[f]
}

type encoded struct {
	format format
	data   any
}

func (e encoded) render(string) (string, error) {
	var (
		b   []byte
		err error
	)
	switch e.format {
	case formatXML:
		b, err = xml.MarshalIndent(e.data, "", "  ")
	case formatJSON:
		b, err = json.MarshalIndent(e.data, "", "  ")
	case formatYAML:
		b, err = yaml.Marshal(e.data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", e.format, err)
	}
	return string(b), nil
}
