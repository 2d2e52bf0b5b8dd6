// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler to be registered via
// [chi.Mux.MethodNotAllowed]. Instead of chi's default 405 it answers with a
// JSON 404, so callers cannot probe which methods a path supports. A request
// whose method does resolve on router is dispatched normally.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		routeNotFound(w, r)
	}
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{
		Message: "Route not found",
		Error:   r.Method + " " + r.URL.Path,
	}, http.StatusNotFound)
}
