// Package service wires the clustering Model, the Streamer loop, and the
// two WebSocket endpoints into the --service CLI mode described in the
// external interfaces: points arrive over /ws/points, model snapshots are
// broadcast over /ws/models.
package service

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/streamfit/streamfit/pkg/errors"
	"github.com/streamfit/streamfit/pkg/utils"

	"github.com/streamfit/streamfit/internal/clustering"
	"github.com/streamfit/streamfit/internal/pointsource"
	"github.com/streamfit/streamfit/internal/space"
	"github.com/streamfit/streamfit/internal/streamer"
	"github.com/streamfit/streamfit/internal/wsapi"
)

// Config configures a service run.
type Config struct {
	Port      int
	Constants clustering.Constants
	Log       utils.Logger
}

// modelSink adapts a Dispatcher to streamer.Sink: every emitted snapshot
// is broadcast to current subscribers. A dispatcher broadcast never fails
// the stream — per-subscriber failures are handled inside Broadcast — so
// Send always returns nil.
type modelSink struct {
	dispatcher *wsapi.Dispatcher
}

func (s *modelSink) Send(line []byte) error {
	s.dispatcher.Broadcast(line)
	return nil
}

// Service owns the HTTP server and the background streamer goroutine for
// one --service run.
type Service struct {
	cfg        Config
	httpServer *http.Server
	dispatcher *wsapi.Dispatcher
	points     chan []byte
	log        utils.Logger
}

// New constructs a Service from cfg. It does not start listening until Run
// is called.
func New(cfg Config) *Service {
	log := cfg.Log
	if log == nil {
		log = &utils.NullLogger{}
	}

	dispatcher := wsapi.NewDispatcher(log)
	points := make(chan []byte, 256)
	pointsHandler := wsapi.NewPointsHandler(points, log)

	mux := http.NewServeMux()
	mux.Handle("/ws/points", pointsHandler)
	mux.Handle("/ws/models", dispatcher)

	return &Service{
		cfg:        cfg,
		httpServer: &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux},
		dispatcher: dispatcher,
		points:     points,
		log:        log,
	}
}

// Run starts the HTTP server and the streamer loop, blocking until the
// streamer halts (on a fatal input/output error — there is no
// end-of-stream for a WebSocket point source other than that) or ctx is
// canceled. It returns the streamer's error, if any.
func (s *Service) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- apperrors.Wrap(apperrors.CodeInputTransport, "http server failed", err)
		}
	}()

	m := clustering.NewModel[[]float64](space.Euclidean())
	src := pointsource.NewChannel(s.points)
	sink := &modelSink{dispatcher: s.dispatcher}

	streamDone := make(chan error, 1)
	go func() {
		streamDone <- streamer.Run(m, s.cfg.Constants, src, sink)
	}()

	select {
	case <-ctx.Done():
		_ = s.httpServer.Shutdown(context.Background())
		return nil
	case err := <-serveErr:
		return err
	case err := <-streamDone:
		_ = s.httpServer.Shutdown(context.Background())
		return err
	}
}
