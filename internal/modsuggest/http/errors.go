package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/service"
	"github.com/aussiebroadwan/modsuggest/pkg/flash"
	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindSelfAction:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindAuthentication, service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err as a JSON error body. Causes of server
// errors are logged and never sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.KindOf(err)
	if kind == service.KindServer {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	}
	httpx.WriteError(w, statusFor(kind), string(kind), service.MessageOf(err))
}

// redirectWithError is the form-flow counterpart of writeServiceError.
func redirectWithError(w http.ResponseWriter, r *http.Request, location string, err error) {
	kind := service.KindOf(err)
	if kind == service.KindServer {
		slogx.FromContext(r.Context()).Error("form request failed", slog.Any("error", err))
	}
	w.Header().Set(modsdk.ErrorKindHeader, string(kind))
	flash.Write(w, r, flash.Error(service.MessageOf(err)))
	httpx.SeeOther(w, r, location)
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, string(service.KindValidation), "Invalid JSON in request body")
}
