package format

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const sampleBundle = `{
  "keys": { "n": 4, "k": 3 },
  "6": { "base": "10", "value": "18" },
  "1": { "base": "10", "value": "3" },
  "2": { "base": 2, "value": "110" },
  "3": { "base": "16", "value": "9" }
}`

func TestParseBundle(t *testing.T) {
	bundle, err := ParseBundle(strings.NewReader(sampleBundle))
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}

	if bundle.N != 4 || bundle.K != 3 {
		t.Errorf("expected n=4 k=3, got n=%d k=%d", bundle.N, bundle.K)
	}

	// Shares come back in ascending index order, with numeric bases
	// normalized to strings.
	want := []RawShare{
		{Index: "1", Base: "10", Value: "3"},
		{Index: "2", Base: "2", Value: "110"},
		{Index: "3", Base: "16", Value: "9"},
		{Index: "6", Base: "10", Value: "18"},
	}
	if !reflect.DeepEqual(bundle.Shares, want) {
		t.Errorf("shares mismatch:\ngot  %+v\nwant %+v", bundle.Shares, want)
	}
}

func TestParseBundleGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(sampleBundle)); err != nil {
		t.Fatalf("failed to compress fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	bundle, err := ParseBundle(&buf)
	if err != nil {
		t.Fatalf("ParseBundle on gzip input failed: %v", err)
	}
	if bundle.N != 4 || len(bundle.Shares) != 4 {
		t.Errorf("unexpected bundle from gzip input: %+v", bundle)
	}
}

func TestParseBundleErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"broken json", `{ "keys": { "n": 2 `},
		{"missing keys", `{ "1": { "base": "10", "value": "3" } }`},
		{"zero threshold", `{ "keys": { "n": 2, "k": 0 }, "1": { "base": "10", "value": "3" } }`},
		{"non-decimal share key", `{ "keys": { "n": 1, "k": 1 }, "one": { "base": "10", "value": "3" } }`},
		{"missing value", `{ "keys": { "n": 1, "k": 1 }, "1": { "base": "10" } }`},
		{"missing base", `{ "keys": { "n": 1, "k": 1 }, "1": { "value": "3" } }`},
		{"no shares", `{ "keys": { "n": 1, "k": 1 } }`},
	}

	for _, tc := range cases {
		if _, err := ParseBundle(strings.NewReader(tc.input)); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestWriteResult(t *testing.T) {
	res := &Result{
		N:      4,
		K:      2,
		Secret: "0",
		WrongShares: []WrongShare{
			{Index: "2", Given: "7", Expected: "6"},
		},
	}

	var buf bytes.Buffer
	if err := WriteResult(&buf, res); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}

	var back Result
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if !reflect.DeepEqual(&back, res) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", back, *res)
	}
}

func TestWriteResultEmptyWrongShares(t *testing.T) {
	res := &Result{N: 2, K: 2, Secret: "42", WrongShares: []WrongShare{}}

	var buf bytes.Buffer
	if err := WriteResult(&buf, res); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}
	if strings.Contains(buf.String(), "null") {
		t.Errorf("empty wrongShares must render as [], got:\n%s", buf.String())
	}
}
