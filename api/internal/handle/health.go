package handle

import "net/http"

func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Envelope{IsSuccess: true, OfficialEmail: h.cfg.OfficialEmail})
}

func (h *Handle) NotFound(w http.ResponseWriter, r *http.Request) {
	h.errorJSON(w, http.StatusNotFound, "not found")
}

func (h *Handle) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.errorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
}
