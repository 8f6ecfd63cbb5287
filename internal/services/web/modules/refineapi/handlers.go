package refineapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/services/onboarding/refine"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/platform/modulehandler"
)

const (
	methodNotAllowedMessage = "Method not allowed"
	invalidBodyMessage      = "Invalid request body"
	refineFailedMessage     = "Failed to refine bio."
)

type refineRequest struct {
	Text string `json:"text"`
}

type refineResponse struct {
	Refined string `json:"refined"`
}

type handlers struct {
	modulehandler.Base
	refiner Refiner
}

func newHandlers(refiner Refiner, base modulehandler.Base) handlers {
	return handlers{Base: base, refiner: refiner}
}

// handleRefine answers with the refined text. Upstream status failures and
// empty candidates fall back to the submitted text; only transport failures
// are reported as errors.
func (h handlers) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		_ = httpx.WriteJSON(w, http.StatusOK, refineResponse{Refined: req.Text})
		return
	}
	if h.refiner == nil {
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, refineFailedMessage)
		return
	}
	refined, err := h.refiner.Refine(h.RequestContext(r), req.Text)
	if err != nil {
		if refine.IsTransportFailure(err) {
			log.Printf("web: refine api failed: %v", err)
			_ = httpx.WriteJSONError(w, http.StatusInternalServerError, refineFailedMessage)
			return
		}
		var statusErr *refine.StatusError
		if errors.As(err, &statusErr) {
			log.Printf("web: refine api upstream status=%d", statusErr.StatusCode)
		}
		refined = req.Text
	}
	_ = httpx.WriteJSON(w, http.StatusOK, refineResponse{Refined: refined})
}

func (h handlers) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusMethodNotAllowed, methodNotAllowedMessage)
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}
