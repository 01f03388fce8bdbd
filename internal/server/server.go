package server

import (
	"context"
	"net/http"
	"time"

	"tally/internal/audit"
	"tally/internal/points"
	"tally/internal/score"
)

// Server encapsulates the HTTP server of the application, providing
// controlled startup and shutdown. Uses a customizable router and ensures
// timeouts for security and stability.
type Server struct {
	// server — embedded HTTP server from net/http package, fully configured
	// and ready to use.
	server *http.Server
}

// ListenAndServe starts the HTTP server and begins listening on the
// specified address. Blocks execution until the server is stopped or an
// error occurs. If the server is stopped via Shutdown, the method returns
// http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server with the provided context.
// Stops listening, terminates accepting new connections, and allows active
// connections to complete within the timeout specified in the context.
// Should be called during graceful shutdown of the application.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// NewServer creates and configures a new server instance.
//
// Parameters:
// - address: address and port to listen on (e.g., ":8080").
// - pointsRepo: storage of computed totals keyed by receipt identifier.
// - calculator: scoring engine applied to submitted receipts.
// - recorder: audit trail for processed receipts.
//
// Configures the receipt API routes and sets secure timeouts for reading
// and writing, and limits header size.
//
// Returns pointer to a ready-to-run server.
func NewServer(
	address string,
	pointsRepo points.Repository,
	calculator *score.Calculator,
	recorder audit.Recorder,
) *Server {
	router := NewApiRouter(pointsRepo, calculator, recorder)
	s := Server{&http.Server{
		Addr:           address,
		Handler:        router.Mux(),
		ReadTimeout:    time.Second * 3,
		WriteTimeout:   time.Second * 3,
		MaxHeaderBytes: 1024 * 10,
	}}

	return &s
}
