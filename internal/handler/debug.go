package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/ecowatt/ecowatt-go/internal/repository"
)

// DebugHandler serves the development-only surfaces: database reset and the
// table-dump view. Never mounted when ENV is not development.
type DebugHandler struct {
	db     *sql.DB
	render *Renderer
}

// NewDebugHandler creates a new DebugHandler.
func NewDebugHandler(db *sql.DB, render *Renderer) *DebugHandler {
	return &DebugHandler{db: db, render: render}
}

// HandleResetDB handles GET /debug/reset-db: drops and recreates the schema.
func (h *DebugHandler) HandleResetDB(w http.ResponseWriter, r *http.Request) {
	if err := repository.Reset(context.WithoutCancel(r.Context()), h.db); err != nil {
		slog.Error("database reset failed", "error", err)
		http.Error(w, "database reset failed", http.StatusInternalServerError)
		return
	}

	w.Write([]byte("Database reset successfully"))
}

// HandleTables handles GET /debug/tables.
func (h *DebugHandler) HandleTables(w http.ResponseWriter, r *http.Request) {
	dumps, err := repository.DumpTables(r.Context(), h.db)
	if err != nil {
		slog.Error("table dump failed", "error", err)
		http.Error(w, "table dump failed", http.StatusInternalServerError)
		return
	}

	h.render.Render(w, r, http.StatusOK, "debug_tables", view{Tables: dumps})
}
