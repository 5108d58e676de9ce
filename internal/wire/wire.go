// Package wire implements the JSON boundary between the outside world and
// the clustering core: point parsing, model serialization, and parsing a
// serialized model back into the bare list of balls clustering.Load takes.
package wire

import (
	"encoding/json"
	"math"

	apperrors "github.com/streamfit/streamfit/pkg/errors"

	"github.com/streamfit/streamfit/internal/clustering"
)

// wireBall is the on-wire shape of one ball: center JSON, radius (number or
// null for an infinite ball), weight.
type wireBall struct {
	Center []float64 `json:"center"`
	Radius *float64  `json:"radius"`
	Weight float64   `json:"weight"`
}

// ParsePoint decodes one newline-delimited JSON array of numbers into a
// Point. A malformed record is a parse error per the error-kind taxonomy
// at the streaming boundary.
func ParsePoint(line []byte) ([]float64, error) {
	var p []float64
	if err := json.Unmarshal(line, &p); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParse, "invalid point JSON", err)
	}
	return p, nil
}

// SerializeModel emits the live balls of a model as a JSON array in
// insertion order, one element per ball: radius is reported at wire level
// (the square root of the internally stored value), null for an infinite
// radius.
func SerializeModel(balls []clustering.Ball[[]float64]) ([]byte, error) {
	out := make([]wireBall, len(balls))
	for i, b := range balls {
		wb := wireBall{Center: b.Center(), Weight: b.Mass()}
		if r := b.Radius(); !math.IsInf(r, 1) {
			wb.Radius = &r
		}
		out[i] = wb
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeOutputTransport, "failed to encode model", err)
	}
	return encoded, nil
}

// LoadBalls parses the model JSON array back into balls, squaring a finite
// wire-level radius back to the native (stored) units clustering.NewBall
// expects. A null radius round-trips to +Inf.
func LoadBalls(data []byte) ([]clustering.Ball[[]float64], error) {
	var raw []wireBall
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParse, "invalid model JSON", err)
	}

	balls := make([]clustering.Ball[[]float64], len(raw))
	for i, wb := range raw {
		radius := math.Inf(1)
		if wb.Radius != nil {
			radius = (*wb.Radius) * (*wb.Radius)
		}
		balls[i] = clustering.NewBall(wb.Center, radius, wb.Weight)
	}
	return balls, nil
}
