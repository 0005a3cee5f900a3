// Package format reads share-bundle files and writes reconstruction
// results. A bundle is a JSON object with a "keys" entry holding the share
// count and threshold, plus one entry per share keyed by its decimal index:
//
//	{
//	  "keys": { "n": 4, "k": 3 },
//	  "1": { "base": "10", "value": "4" },
//	  "2": { "base": "2",  "value": "111" }
//	}
package format

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Bundle is the parsed form of one share-bundle file.
type Bundle struct {
	// N is the declared total share count.
	N int

	// K is the threshold: the number of shares that define the polynomial.
	K int

	// Shares holds the raw, still-encoded shares in ascending index order.
	Shares []RawShare
}

// RawShare is a single share as it appears on the wire.
type RawShare struct {
	// Index is the decimal x coordinate used as the JSON key.
	Index string

	// Base is the radix of Value, as a decimal string.
	Base string

	// Value is the encoded y coordinate.
	Value string
}

type keysEntry struct {
	N int `json:"n"`
	K int `json:"k"`
}

type shareEntry struct {
	Base  json.RawMessage `json:"base"`
	Value string          `json:"value"`
}

// ParseBundle reads one share bundle from r. Gzip-compressed input is
// recognized by its magic bytes and decompressed transparently.
func ParseBundle(r io.Reader) (*Bundle, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		return parseJSON(gz)
	}
	return parseJSON(br)
}

func parseJSON(r io.Reader) (*Bundle, error) {
	// The share keys are dynamic, so decode into raw messages first.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse bundle json: %w", err)
	}

	keysRaw, ok := raw["keys"]
	if !ok {
		return nil, errors.New("bundle is missing the \"keys\" entry")
	}
	var keys keysEntry
	if err := json.Unmarshal(keysRaw, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse \"keys\": %w", err)
	}
	if keys.N < 1 || keys.K < 1 {
		return nil, fmt.Errorf("invalid keys: n=%d k=%d", keys.N, keys.K)
	}

	// Collect the share indices and order them numerically so callers see a
	// deterministic share sequence regardless of JSON map order.
	indices := make([]string, 0, len(raw)-1)
	for key := range raw {
		if key == "keys" {
			continue
		}
		if _, err := strconv.Atoi(key); err != nil {
			return nil, fmt.Errorf("share key %q is not a decimal index", key)
		}
		indices = append(indices, key)
	}
	sort.Slice(indices, func(i, j int) bool {
		a, _ := strconv.Atoi(indices[i])
		b, _ := strconv.Atoi(indices[j])
		return a < b
	})

	bundle := &Bundle{N: keys.N, K: keys.K}
	for _, key := range indices {
		var entry shareEntry
		if err := json.Unmarshal(raw[key], &entry); err != nil {
			return nil, fmt.Errorf("failed to parse share %q: %w", key, err)
		}
		base, err := baseString(entry.Base)
		if err != nil {
			return nil, fmt.Errorf("share %q: %w", key, err)
		}
		if entry.Value == "" {
			return nil, fmt.Errorf("share %q has no value", key)
		}
		bundle.Shares = append(bundle.Shares, RawShare{Index: key, Base: base, Value: entry.Value})
	}
	if len(bundle.Shares) == 0 {
		return nil, errors.New("bundle contains no shares")
	}

	return bundle, nil
}

// baseString accepts the base field as either a JSON string or a number.
func baseString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("share has no base")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("base must be a string or number, got %s", raw)
}
