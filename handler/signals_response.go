package handler

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type signalsResponse struct {
	signals map[string]any
}

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	data, err := json.Marshal(s.signals)
	if err != nil {
		return err
	}
	return datastar.NewSSE(w, r).PatchSignals(data)
}

// Signals patches the client signal store, e.g. to enable the submit button.
// Plain requests get 204 No Content.
func Signals(signals map[string]any) Response {
	return signalsResponse{signals: signals}
}

type emptyResponse struct{}

func (emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response { return emptyResponse{} }
