package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/fieldcrew/dispatch/internal/service"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "direction", "start_time", "driver", "status",
	"stop_order", "stop_location", "staff", "distance_km",
}

// handleManifest returns the flat run-sheet.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	rows, err := s.manifest.Rows(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeManifestCSV(w, rows)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// writeManifestCSV encodes rows as CSV. Staff names within a row are
// pipe-separated ("|") to keep each stop on a single CSV line.
func writeManifestCSV(w http.ResponseWriter, rows []service.ManifestRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.TripID,
			r.Direction,
			r.StartTime,
			r.Driver,
			r.Status,
			strconv.Itoa(r.StopOrder),
			r.StopLoc,
			strings.Join(r.Staff, "|"),
			strconv.FormatFloat(r.DistanceKm, 'f', -1, 64),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="manifest.csv"`)
	//nolint:errcheck
	w.Write(buf.Bytes())
}
