package handler

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecowatt/ecowatt-go/internal/middleware"
	"github.com/ecowatt/ecowatt-go/internal/model"
	"github.com/ecowatt/ecowatt-go/internal/repository"
	"github.com/ecowatt/ecowatt-go/web/templates"
)

// Renderer executes the embedded HTML views. Each page template is parsed
// together with the shared layout once at startup.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every embedded page against the layout.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.Glob(templates.FS, "*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, name := range entries {
		if name == "layout.html" {
			continue
		}
		tpl, err := template.ParseFS(templates.FS, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = tpl
	}

	return &Renderer{pages: pages}, nil
}

// view is the data every page receives: the session (if any), a one-shot
// flash message, and page-specific fields merged in by the caller.
type view struct {
	Session *model.Session
	Flash   *Flash

	// Page-specific bindings.
	Token               string
	Account             *model.Account
	Devices             []model.DeviceUsage
	Tips                []model.EnergyTip
	TotalMonthlyCost    float64
	EstimatedAnnualCost float64
	Tables              []repository.TableDump
}

// Render executes a page, filling in session and flash from the request.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data view) {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		data.Session = &session
	}
	if data.Flash == nil {
		data.Flash = popFlash(w, r)
	}

	tpl, ok := rd.pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("template execution failed", "page", page, "error", err)
	}
}
