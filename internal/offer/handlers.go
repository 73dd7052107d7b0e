package offer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gigscout/gigscout/internal/geo"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// jsonError writes a JSON error envelope with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// handleListOffers returns a list of all offers
func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.service.ListOffers()
	if err != nil {
		slog.Error("Error listing offers", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(offers); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// parseOrigin reads the optional lat/lon form fields carrying the driver's
// current position. Both must be present and numeric for an origin to count.
func parseOrigin(r *http.Request) *geo.Coordinate {
	latStr := r.FormValue("lat")
	lonStr := r.FormValue("lon")
	if latStr == "" || lonStr == "" {
		return nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil
	}

	return &geo.Coordinate{Lat: lat, Lon: lon}
}

// handleUploadOffer handles offer screenshot upload
func (s *Server) handleUploadOffer(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 50MB to handle high-resolution phone screenshots)
	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		errorMsg := "No file provided"
		if err.Error() == "http: no such file" {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	// Check file size before reading
	if header.Size > maxFormSize {
		jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusBadRequest)
		return
	}

	// Read file data
	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	// Determine content type
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		switch ext {
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".png":
			contentType = "image/png"
		case ".pdf":
			contentType = "application/pdf"
		case ".heic":
			contentType = "image/heic"
		case ".heif":
			contentType = "image/heif"
		default:
			contentType = "application/octet-stream"
		}
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	// Process offer
	offer, err := s.service.ProcessOffer(header.Filename, data, contentType, parseOrigin(r))
	if err != nil {
		slog.Error("Error processing offer", "filename", header.Filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(offer); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetOffer returns a single offer
func (s *Server) handleGetOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Offer ID required", http.StatusBadRequest)
		return
	}
	offer, err := s.service.GetOffer(id)
	if err != nil {
		corsError(w, "Offer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(offer); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUpdateOffer applies driver corrections and re-evaluates
func (s *Server) handleUpdateOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Offer ID required", http.StatusBadRequest)
		return
	}

	var update OfferUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	offer, err := s.service.UpdateOffer(id, update)
	if err != nil {
		slog.Error("Error updating offer", "id", id, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(offer); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetOfferFile returns the screenshot for an offer
func (s *Server) handleGetOfferFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Offer ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetOfferFile(id)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteOffer deletes an offer
func (s *Server) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Offer ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteOffer(id); err != nil {
		corsError(w, "Error deleting offer", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetVehicle returns the stored vehicle profile
func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.service.Vehicle()
	if err != nil {
		slog.Error("Error loading vehicle profile", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(vehicle); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleSetVehicle persists the vehicle profile
func (s *Server) handleSetVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := s.service.SetVehicle(vehicle)
	if err != nil {
		slog.Error("Error saving vehicle profile", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(saved); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleEvaluate computes profitability for explicit figures without
// touching any stored offer
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PayUSD     float64 `json:"pay_usd"`
		GigMiles   float64 `json:"gig_miles"`
		ExtraMiles float64 `json:"extra_miles"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	computation, err := s.service.EvaluateAgainstVehicle(req.PayUSD, req.GigMiles, req.ExtraMiles)
	if err != nil {
		slog.Error("Error evaluating offer", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(computation); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
