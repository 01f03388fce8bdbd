package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"tally/internal/audit"
	"tally/internal/points"
	"tally/internal/receipt"
	"tally/internal/score"
)

// ApiRouter manages the receipt API routes: processing submitted receipts
// and returning stored point totals. All endpoints exchange JSON bodies.
type ApiRouter struct {
	// pointsRepo — storage of computed totals keyed by receipt identifier.
	pointsRepo points.Repository
	// calculator — scoring engine applied to every submitted receipt.
	calculator *score.Calculator
	// recorder — audit trail for successfully processed receipts.
	recorder audit.Recorder
}

// processResponse is the body returned for a processed receipt.
type processResponse struct {
	Id string `json:"id"`
}

// pointsResponse is the body returned for a points lookup.
type pointsResponse struct {
	Points int `json:"points"`
}

// errorResponse is the body returned for client errors.
type errorResponse struct {
	Error string `json:"Error"`
}

// Mux returns a configured *http.ServeMux with registered handlers.
// Registers the following routes:
// - POST /receipts/process — scores and stores a submitted receipt
// - GET /receipts/{id}/points — retrieves the stored total by identifier
func (ar *ApiRouter) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /receipts/process", ar.processHandler)
	mux.HandleFunc("GET /receipts/{id}/points", ar.pointsHandler)

	return mux
}

// writeJSON marshals v and writes it with the given status code.
// Marshaling failures are logged and collapse into a bare 400.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Unable to marshal response", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// invalidRequest writes the uniform 400 payload for unparseable or
// malformed submissions.
func invalidRequest(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid Request"})
}

// processHandler handles POST requests with a receipt to score.
// Expects a JSON body in the receipt shape. On success the receipt is scored,
// the total stored under a fresh identifier, and the identifier returned with
// status 201. A body that does not parse, or a receipt field that is present
// but malformed, yields status 400 with an error payload.
func (ar *ApiRouter) processHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("Unable to read receipt request body", "error", err)
		invalidRequest(w)
		return
	}

	defer r.Body.Close()

	var rec receipt.Receipt
	err = json.Unmarshal(body, &rec)
	if err != nil {
		slog.Warn("Unable to unmarshal receipt request body", "error", err)
		invalidRequest(w)
		return
	}

	total, err := ar.calculator.Total(rec)
	if err != nil {
		var malformed *receipt.MalformedReceiptError
		if errors.As(err, &malformed) {
			slog.Warn("Malformed receipt", "field", malformed.Field, "value", malformed.Value)
		} else {
			slog.Warn("Receipt scoring failed", "error", err)
		}
		invalidRequest(w)
		return
	}

	id := uuid.NewString()
	ar.pointsRepo.Put(id, total)

	retailer := ""
	if rec.Retailer != nil {
		retailer = *rec.Retailer
	}
	ar.recorder.Record(id, total, retailer)

	slog.Debug("Receipt processed", "id", id, "points", total)
	writeJSON(w, http.StatusCreated, processResponse{Id: id})
}

// pointsHandler handles requests to retrieve a stored total by identifier.
// The identifier is extracted from the URL path: /receipts/{id}/points.
// A known identifier returns its total with status 200 — a stored zero is a
// real score and is returned as {"points": 0}. An unknown identifier returns
// status 204 with no body.
func (ar *ApiRouter) pointsHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if len(id) == 0 {
		slog.Warn("Empty receipt id")
		invalidRequest(w)
		return
	}

	total, err := ar.pointsRepo.Get(id)
	if err != nil {
		slog.Warn("Points not found", "id", id, "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, pointsResponse{Points: total})
}

// NewApiRouter creates a new receipt API router.
// Parameters:
// - pointsRepo: points storage
// - calculator: scoring engine
// - recorder: audit trail (audit.NopRecorder when disabled)
//
// Returns pointer to configured ApiRouter.
func NewApiRouter(
	pointsRepo points.Repository,
	calculator *score.Calculator,
	recorder audit.Recorder,
) *ApiRouter {
	return &ApiRouter{
		pointsRepo: pointsRepo,
		calculator: calculator,
		recorder:   recorder,
	}
}
