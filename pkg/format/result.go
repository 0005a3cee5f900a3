package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// InconsistentMarker is the expected-value marker used when the recovered
// polynomial does not predict an integer at a share's x.
const InconsistentMarker = "non-integer (inconsistent)"

// Result is the wire form of one reconstruction outcome.
type Result struct {
	N           int          `json:"n"`
	K           int          `json:"k"`
	Secret      string       `json:"secret"`
	WrongShares []WrongShare `json:"wrongShares"`
}

// WrongShare reports one share that disagrees with the recovered
// polynomial.
type WrongShare struct {
	// Index is the share's x coordinate.
	Index string `json:"index"`

	// Given is the y value the share actually carried.
	Given string `json:"given"`

	// Expected is the integer the polynomial predicts at this x, or
	// InconsistentMarker when the prediction is not an integer.
	Expected string `json:"expected"`
}

// WriteResult serializes the result as indented JSON.
func WriteResult(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
