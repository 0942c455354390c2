package rest

import (
	"log/slog"
	"net/http"

	"github.com/offmind/offmind-backend/internal/catalog"
	"github.com/offmind/offmind-backend/internal/domain"
)

// Icons handles GET /catalog/icons with the icons offered in the picker.
// Optional q searches names and categories; category narrows to one group.
func Icons(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := catalog.IconCategory(query.Get("category"))
	if category != "" && !category.IsValid() {
		respondError(w, r, slog.Default(), domain.NewValidationError("category", "unknown icon category"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"icons":      catalog.SearchIcons(query.Get("q"), category),
		"categories": catalog.Categories(),
		"fallback":   catalog.FallbackIcon,
	})
}

// Colors handles GET /catalog/colors.
func Colors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"colors": catalog.Palette()})
}

// Defaults handles GET /catalog/defaults.
func Defaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"destinations": catalog.DefaultDestinations()})
}
