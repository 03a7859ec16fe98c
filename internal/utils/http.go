// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared by the transport and service layers:
// bearer token encoding, JSON response writing, the outbound HTTP client and
// identifier generation.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/repraze/repraze-apps-sub001/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteData writes data and optional meta inside the {data, meta} envelope.
func WriteData(w http.ResponseWriter, data, meta any, statusCode int) (int, error) {
	return WriteJSON(w, models.Response{Data: data, Meta: meta}, statusCode)
}

// WriteMessage writes a {message} body.
func WriteMessage(w http.ResponseWriter, message string, statusCode int) (int, error) {
	return WriteJSON(w, models.MessageResponse{Message: message}, statusCode)
}
