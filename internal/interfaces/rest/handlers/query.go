package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/interfaces/rest"
)

func (h *Handlers) ListOracles(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIOracles(h.oracles.Identities()))
}

func (h *Handlers) GetOracle(w http.ResponseWriter, r *http.Request) {
	addr := domain.Address(r.PathValue("address")).Normalize()

	identity, ok := h.oracles.Lookup(addr)
	if !ok {
		rest.WriteNotFound(w, fmt.Sprintf("oracle %s is not registered", addr))
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIOracle(identity))
}

// ListAttempts returns every journaled response attempt for the request at
// the given stream offset.
func (h *Handlers) ListAttempts(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.ParseUint(r.PathValue("offset"), 10, 64)
	if err != nil {
		rest.WriteError(w, &rest.RequestError{Param: "offset", Message: "must be a non-negative integer"}, h.logger)
		return
	}

	if h.journal == nil {
		rest.WriteJSON(w, http.StatusOK, []rest.AttemptResponse{})
		return
	}

	attempts, err := h.journal.ListByRequest(r.Context(), offset)
	if err != nil {
		rest.WriteError(w, fmt.Errorf("list attempts for offset %d: %w", offset, err), h.logger)
		return
	}
	rest.WriteJSON(w, http.StatusOK, rest.ToAPIAttempts(attempts))
}
