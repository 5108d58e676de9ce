// Package streamer drives the pull loop: read one serialized point, fit it
// into the model, serialize the model, push it to the sink. One emission
// per accepted input, no batching; halts on source exhaustion or the first
// parse/transport error.
package streamer

import (
	apperrors "github.com/streamfit/streamfit/pkg/errors"

	"github.com/streamfit/streamfit/internal/clustering"
	"github.com/streamfit/streamfit/internal/wire"
)

// Source is a blocking pull iterator over serialized points. Next returns
// the next line, an error, and whether the stream is still open. When ok
// is false the stream ended cleanly (ok together with a non-nil err means
// the source itself failed to read, not that it ran out of input).
type Source interface {
	Next() (line []byte, err error, ok bool)
}

// Sink consumes one serialized model snapshot per call.
type Sink interface {
	Send(line []byte) error
}

// Run pulls points from src, fits each into m, and pushes the serialized
// model to sink after every accepted point, until src is exhausted or a
// parse/transport error occurs. It returns that first error, or nil on
// clean end-of-input.
func Run(m *clustering.Model[[]float64], c clustering.Constants, src Source, sink Sink) error {
	for {
		line, err, ok := src.Next()
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInputTransport, "input stream failed", err)
		}
		if !ok {
			return nil
		}

		point, err := wire.ParsePoint(line)
		if err != nil {
			return err
		}

		clustering.Fit(m, point, c)

		encoded, err := wire.SerializeModel(m.IterBalls())
		if err != nil {
			return err
		}

		if err := sink.Send(encoded); err != nil {
			return apperrors.Wrap(apperrors.CodeOutputTransport, "output sink failed", err)
		}
	}
}
