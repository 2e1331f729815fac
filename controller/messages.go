package controller

import (
	"fmt"
	"strings"
)

// Messages is the catalog of user facing texts.
type Messages struct {
	Uploading     string
	NoFiles       string
	UploadDone    string
	Saved         string // %s: comma separated names
	Rejected      string // %s: comma separated names
	UploadFailed  string
	UploadNetwork string

	Searching     string // %s: query
	Found         string // %d: item count, %s: query
	NoMatches     string // %s: query
	SearchFailed  string
	SearchNetwork string

	NoResults     string
	PageIndicator string // %d page, %d total pages, %d items
	Previous      string
	Next          string
}

var DefaultMessages = Messages{
	Uploading:     "Subiendo archivos...",
	NoFiles:       "Por favor selecciona al menos un archivo.",
	UploadDone:    "Carga completada.",
	Saved:         " Guardados: %s.",
	Rejected:      " Rechazados (no pdf/docx): %s.",
	UploadFailed:  "Hubo un error al subir los archivos.",
	UploadNetwork: "Error al subir archivos.",

	Searching:     `Buscando "%s"...`,
	Found:         `Se encontraron %d coincidencia(s) para "%s".`,
	NoMatches:     `No se encontraron coincidencias para "%s".`,
	SearchFailed:  "Hubo un error al realizar la búsqueda.",
	SearchNetwork: "Error al realizar la búsqueda.",

	NoResults:     "Sin resultados.",
	PageIndicator: "Página %d de %d · %d resultados",
	Previous:      "« Anterior",
	Next:          "Siguiente »",
}

// UploadSummary composes the message for a successful upload.
func (m Messages) UploadSummary(saved, rejected []string) string {
	var b strings.Builder
	b.WriteString(m.UploadDone)
	if len(saved) > 0 {
		fmt.Fprintf(&b, m.Saved, strings.Join(saved, ", "))
	}
	if len(rejected) > 0 {
		fmt.Fprintf(&b, m.Rejected, strings.Join(rejected, ", "))
	}
	return b.String()
}

// Indicator renders the "page X of Y · N results" text.
func (m Messages) Indicator(page, totalPages, totalItems int) string {
	return fmt.Sprintf(m.PageIndicator, page, totalPages, totalItems)
}
