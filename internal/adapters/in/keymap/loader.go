// Package keymap reads terminal key bindings from a YAML file:
//
//	confirmed: ["1", "2", "3"]
//	preparing: [q, w, e]
//	ready: [a, s, d]
//	toggles:
//	  mute: m
//	  fine-timer: p
//
// Sections left out keep their default bindings.
package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kitchen/internal/core/application/kitchen"

	"gopkg.in/yaml.v3"
)

// Load reads path and merges it over kitchen.DefaultKeyMap. An empty path
// returns the defaults.
func Load(path string) (kitchen.KeyMap, error) {
	if path == "" {
		return kitchen.DefaultKeyMap(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return kitchen.KeyMap{}, fmt.Errorf("read key map: %w", err)
	}

	km, err := Parse(data)
	if err != nil {
		return kitchen.KeyMap{}, fmt.Errorf("key map %s: %w", path, err)
	}
	return km, nil
}

// Parse decodes YAML bindings and merges them over the defaults.
func Parse(data []byte) (kitchen.KeyMap, error) {
	var file kitchen.KeyMap
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return kitchen.KeyMap{}, fmt.Errorf("decode: %w", err)
	}

	km := kitchen.DefaultKeyMap()
	if file.Confirmed != nil {
		km.Confirmed = normalize(file.Confirmed)
	}
	if file.Preparing != nil {
		km.Preparing = normalize(file.Preparing)
	}
	if file.Ready != nil {
		km.Ready = normalize(file.Ready)
	}
	for t, symbol := range file.Toggles {
		km.Toggles[t] = strings.ToLower(strings.TrimSpace(symbol))
	}

	if err := km.Validate(); err != nil {
		return kitchen.KeyMap{}, err
	}
	return km, nil
}

func normalize(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
