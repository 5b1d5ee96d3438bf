package handlers

import (
	"net/http"

	"github.com/unionprice/union-price-api/internal/docs"
)

// APIDocs serves the descriptive API document, JSON by default or YAML with ?format=yaml.
func APIDocs(doc *docs.Document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") == "yaml" {
			data, err := doc.YAML()
			if err != nil {
				RespondErrorJSON(w, r, http.StatusInternalServerError, ErrInternalServer.Error(), "failed to render api docs", nil)
				return
			}
			writeRaw(w, http.StatusOK, "application/yaml", data)
			return
		}

		data, err := doc.JSON()
		if err != nil {
			RespondErrorJSON(w, r, http.StatusInternalServerError, ErrInternalServer.Error(), "failed to render api docs", nil)
			return
		}
		writeRaw(w, http.StatusOK, "application/json", data)
	}
}
