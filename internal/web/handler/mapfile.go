package handler

import (
	"io"
	"net/http"

	"github.com/jurdabos/countries-visited/internal/palette"
	"github.com/jurdabos/countries-visited/internal/services/player"
	"github.com/jurdabos/countries-visited/internal/storage"
	"github.com/jurdabos/countries-visited/internal/web/middleware"
)

// Uploaded containers are small; a whole map with every country marked
// stays well under this
const maxUploadBytes = 10 << 20

// MapFileHandler handles map-file management: starting a new map,
// downloading the container and replacing it from an upload
type MapFileHandler struct {
	players *player.Service
	storage storage.Storage
	palette palette.Set
}

// NewMapFileHandler creates a new MapFileHandler
func NewMapFileHandler(players *player.Service, store storage.Storage, paletteSet palette.Set) *MapFileHandler {
	return &MapFileHandler{
		players: players,
		storage: store,
		palette: paletteSet,
	}
}

// Reset starts a new map, discarding every player
func (h *MapFileHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Reset(r.Context(), h.palette.Hexes()); err != nil {
		middleware.SetFlash(w, "error", "Failed to reset the map")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Started a new map")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Download serves the current container file
func (h *MapFileHandler) Download(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.storage.(storage.Snapshotter)
	if !ok {
		middleware.SetFlash(w, "error", "The current storage backend has no map file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data, err := snap.Snapshot(r.Context())
	if err != nil {
		middleware.SetFlash(w, "error", "Failed to export the map")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="visited.cvc"`)
	_, _ = w.Write(data)
}

// Upload replaces the map with an uploaded container file
func (h *MapFileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.storage.(storage.Snapshotter)
	if !ok {
		middleware.SetFlash(w, "error", "The current storage backend has no map file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.SetFlash(w, "error", "Invalid upload")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	file, _, err := r.FormFile("container")
	if err != nil {
		middleware.SetFlash(w, "error", "Choose a map file to upload")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		middleware.SetFlash(w, "error", "Failed to read the uploaded file")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := snap.Restore(r.Context(), data); err != nil {
		middleware.SetFlash(w, "error", "That file is not a valid map container")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Map loaded")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
