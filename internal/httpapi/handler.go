/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package httpapi exposes the contacts Service over HTTP.
//
// Every route turns a verb and a path into one contacts message, waits for
// the reply and renders it: Success as 200 with the JSON payload, NotFound
// as 404, a timeout as 504 and anything else as 500.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"github.com/tochemey/contacts/contacts"
	gerrors "github.com/tochemey/contacts/errors"
	"github.com/tochemey/contacts/log"
)

// maxBodySize bounds the size of a request payload
const maxBodySize = 1 << 20

const (
	userIDParam    = "user_id"
	contactIDParam = "contact_id"
)

// Handler serves the contacts routes
type Handler struct {
	service *contacts.Service
	logger  log.Logger
}

// NewHandler creates the HTTP handler of the contacts Service.
// Responses are gzip compressed when the client accepts it.
func NewHandler(service *contacts.Service, logger log.Logger) http.Handler {
	if logger == nil {
		logger = log.DefaultLogger
	}

	h := &Handler{
		service: service,
		logger:  logger,
	}

	prefix := "/api/{" + userIDParam + "}/contacts"
	if service.SingleTenant() {
		prefix = "/api/contacts"
	}
	item := prefix + "/{" + contactIDParam + "}"

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+prefix, h.list)
	mux.HandleFunc("POST "+prefix, h.create)
	mux.HandleFunc("GET "+item, h.get)
	mux.HandleFunc("PATCH "+item, h.update)
	mux.HandleFunc("DELETE "+item, h.remove)
	mux.HandleFunc("GET /healthz", h.health)

	return gzhttp.GzipHandler(mux)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, contacts.NewGetContacts(r.PathValue(userIDParam)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, contacts.NewGetContact(r.PathValue(userIDParam), r.PathValue(contactIDParam)))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	h.perform(w, r, contacts.NewCreateContact(r.PathValue(userIDParam), payload))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	h.perform(w, r, contacts.NewUpdateContact(r.PathValue(userIDParam), r.PathValue(contactIDParam), payload))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, contacts.NewRemoveContact(r.PathValue(userIDParam), r.PathValue(contactIDParam)))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// perform queries the contacts actors and renders the reply
func (h *Handler) perform(w http.ResponseWriter, r *http.Request, msg *contacts.Message) {
	resp, err := h.service.Query(r.Context(), msg)
	if err != nil {
		if errors.Is(err, gerrors.ErrRequestTimeout) {
			h.logger.Warnf("%s query for user=(%s) timed out", msg.Type, msg.UserID)
			writeStatus(w, http.StatusGatewayTimeout)
			return
		}
		h.logger.Errorf("%s query for user=(%s) failed: %v", msg.Type, msg.UserID, err)
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	switch resp.Type {
	case contacts.Success:
		h.writeJSON(w, http.StatusOK, resp.Body())
	case contacts.NotFound:
		writeStatus(w, http.StatusNotFound)
	default:
		h.logger.Errorf("unexpected %s reply to %s query", resp.Type, msg.Type)
		writeStatus(w, http.StatusInternalServerError)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	h.logger.Debugf("rejected request payload: %v", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		h.logger.Errorf("failed to encode response: %v", err)
		writeStatus(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeStatus(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// readPayload decodes the request body as a JSON object.
// An empty body is an empty payload.
func readPayload(w http.ResponseWriter, r *http.Request) (contacts.Fields, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return contacts.Fields{}, nil
	}

	var payload contacts.Fields
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("request body must be a JSON object: %w", err)
	}

	if payload == nil {
		payload = contacts.Fields{}
	}
	return payload, nil
}
