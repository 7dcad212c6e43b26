package http

import (
	"net/http"

	"cartrade-engine/internal/http/handlers"
)

func Routes(h handlers.Handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/status", h.Status)
	mux.HandleFunc("/run", h.Run)
	return mux
}
