package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/diff"
	"github.com/ssargent/odsdb/pkg/logging"
	"github.com/ssargent/odsdb/pkg/storage"
)

// Server holds the API server state
type Server struct {
	store   IOutlineStore
	codec   IOutlineCodec
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store IOutlineStore, c IOutlineCodec, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		codec:   c,
		config:  config,
		metrics: metrics,
	}
}

// readBody reads the request body, honouring the configured size limit
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := io.Reader(r.Body)
	if s.config.MaxBodySize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
	}
	return io.ReadAll(body)
}

// decode runs the codec and records metrics
func (s *Server) decode(buf []byte) (*codec.Outline, error) {
	start := time.Now()
	outline, err := s.codec.Decode(buf)
	s.metrics.RecordCodecOperation("decode", err == nil, time.Since(start))
	if err != nil {
		logging.Debug("api: decode of %d bytes failed: %v", len(buf), err)
		return nil, err
	}
	s.metrics.RecordDecoded(len(buf), len(outline.Entries))
	return outline, nil
}

// parseID reads the {id} URL parameter
func parseID(r *http.Request, param string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid outline id %q", chi.URLParam(r, param))
	}
	return id, nil
}

// storageError maps a storage error to a response
func storageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, "Outline not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrInvalid):
		sendError(w, err.Error(), http.StatusBadRequest)
	default:
		sendError(w, fmt.Sprintf("Storage failure: %v", err), http.StatusInternalServerError)
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecode godoc
//
//	@Summary		Decode an outline
//	@Description	Decode a raw outline buffer. Use ?view=text for a plain text rendering.
//	@Tags			codec
//	@Accept			octet-stream
//	@Produce		json,plain
//	@Param			body	body		[]byte	true	"Outline buffer"
//	@Param			view	query		string	false	"Rendering (json or text)"
//	@Success		200		{object}	codec.Outline
//	@Failure		400		{object}	map[string]string
//	@Router			/decode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	outline, err := s.decode(body)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to decode outline: %v", err), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("view") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, strings.Join(diff.Render(outline, diff.Options{Offsets: true}), ""))
		return
	}
	sendSuccess(w, outline)
}

// handleEncode godoc
//
//	@Summary		Encode an outline
//	@Description	Encode a JSON outline into the binary format
//	@Tags			codec
//	@Accept			json
//	@Produce		octet-stream
//	@Param			body	body		codec.Outline	true	"Outline"
//	@Success		200		{string}	byte
//	@Failure		400		{object}	map[string]string
//	@Router			/encode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var outline codec.Outline
	if err := json.Unmarshal(body, &outline); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	buf, err := s.codec.Encode(&outline)
	s.metrics.RecordCodecOperation("encode", err == nil, time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to encode outline: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(buf)
}

// handleCreateOutline godoc
//
//	@Summary		Store an outline
//	@Description	Validate and store a raw outline buffer
//	@Tags			outlines
//	@Accept			octet-stream
//	@Produce		json
//	@Param			body	body		[]byte	true	"Outline buffer"
//	@Success		200		{object}	CreateOutlineResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/outlines [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCreateOutline(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	outline, err := s.decode(body)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to decode outline: %v", err), http.StatusBadRequest)
		return
	}

	id, err := s.store.Create(body)
	s.metrics.RecordStorageOperation("create", err == nil)
	if err != nil {
		storageError(w, err)
		return
	}

	logging.Info("api: stored outline %s (%d entries)", id, len(outline.Entries))
	sendSuccess(w, CreateOutlineResponse{ID: id.String(), Entries: len(outline.Entries)})
}

// handleListOutlines godoc
//
//	@Summary		List outlines
//	@Description	List all stored outlines
//	@Tags			outlines
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Router			/outlines [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListOutlines(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List()
	s.metrics.RecordStorageOperation("list", err == nil)
	if err != nil {
		storageError(w, err)
		return
	}

	s.metrics.UpdateStoredOutlines(len(infos))
	sendSuccess(w, map[string]interface{}{"outlines": infos})
}

// handleGetOutline godoc
//
//	@Summary		Get an outline
//	@Description	Get a stored outline in decoded form
//	@Tags			outlines
//	@Produce		json
//	@Param			id	path		string	true	"Outline id"
//	@Success		200	{object}	OutlineResponse
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/outlines/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf, err := s.store.Read(id)
	s.metrics.RecordStorageOperation("read", err == nil)
	if err != nil {
		storageError(w, err)
		return
	}

	outline, err := s.decode(buf)
	if err != nil {
		sendError(w, fmt.Sprintf("Stored outline no longer decodes: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, OutlineResponse{ID: id.String(), Created: id.Time(), Size: len(buf), Outline: outline})
}

// handleGetOutlineRaw godoc
//
//	@Summary		Get a raw outline
//	@Description	Get the stored outline buffer
//	@Tags			outlines
//	@Produce		octet-stream
//	@Param			id	path		string	true	"Outline id"
//	@Success		200	{string}	byte
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/outlines/{id}/raw [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetOutlineRaw(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf, err := s.store.Read(id)
	s.metrics.RecordStorageOperation("read", err == nil)
	if err != nil {
		storageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := w.Write(buf); err != nil {
		logging.Warn("api: failed to write outline %s: %v", id, err)
	}
}

// handleUpdateOutline godoc
//
//	@Summary		Replace an outline
//	@Description	Validate and replace a stored outline buffer
//	@Tags			outlines
//	@Accept			octet-stream
//	@Produce		json
//	@Param			id		path		string	true	"Outline id"
//	@Param			body	body		[]byte	true	"Outline buffer"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/outlines/{id} [put]
//	@Security		ApiKeyAuth
func (s *Server) handleUpdateOutline(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	err = s.store.Update(id, body)
	s.metrics.RecordStorageOperation("update", err == nil)
	if err != nil {
		storageError(w, err)
		return
	}

	sendSuccess(w, map[string]string{"message": "Outline updated successfully"})
}

// handleDeleteOutline godoc
//
//	@Summary		Delete an outline
//	@Description	Delete a stored outline
//	@Tags			outlines
//	@Produce		json
//	@Param			id	path		string	true	"Outline id"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/outlines/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteOutline(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.store.Delete(id)
	s.metrics.RecordStorageOperation("delete", err == nil)
	if err != nil {
		storageError(w, err)
		return
	}

	sendSuccess(w, map[string]string{"message": "Outline deleted successfully"})
}

// handleDiffOutlines godoc
//
//	@Summary		Diff two outlines
//	@Description	Unified diff between the text renderings of two stored outlines
//	@Tags			outlines
//	@Produce		json
//	@Param			id		path		string	true	"Outline id"
//	@Param			other	path		string	true	"Outline id to compare with"
//	@Success		200		{object}	DiffResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/outlines/{id}/diff/{other} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleDiffOutlines(w http.ResponseWriter, r *http.Request) {
	var ids [2]ksuid.KSUID
	for i, param := range []string{"id", "other"} {
		id, err := parseID(r, param)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ids[i] = id
	}

	var outlines [2]*codec.Outline
	for i, id := range ids {
		buf, err := s.store.Read(id)
		s.metrics.RecordStorageOperation("read", err == nil)
		if err != nil {
			storageError(w, err)
			return
		}
		if outlines[i], err = s.decode(buf); err != nil {
			sendError(w, fmt.Sprintf("Stored outline no longer decodes: %v", err), http.StatusInternalServerError)
			return
		}
	}

	patch, err := diff.Unified(ids[0].String(), ids[1].String(), outlines[0], outlines[1], diff.Options{})
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to diff outlines: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, DiffResponse{
		From:  ids[0].String(),
		To:    ids[1].String(),
		Equal: patch == "",
		Patch: patch,
	})
}
