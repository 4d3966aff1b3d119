package http

import (
	"encoding/json"
	"errors"
	"fibaro-hap-bridge/internal/domain/model"
	"fibaro-hap-bridge/internal/domain/service"
	"fibaro-hap-bridge/internal/domain/translator"
	"fibaro-hap-bridge/internal/ports"
	"math"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type Server struct {
	bridge ports.BridgePort
	log    *logrus.Logger
}

func NewServer(bridge ports.BridgePort, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		bridge: bridge,
		log:    log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", s.handleAPI)
	mux.HandleFunc("/admin/config", s.handleConfig)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch parts[0] {
	case "accessories":
		switch {
		case len(parts) == 1:
			s.handleGetAccessories(w, r)
		case len(parts) == 2:
			s.handleGetAccessory(w, r, parts[1])
		case len(parts) == 4 && parts[2] == "characteristics":
			s.handleReadCharacteristic(w, r, parts[1], parts[3])
		default:
			http.NotFound(w, r)
		}
	case "devices":
		if len(parts) == 3 && parts[2] == "properties" {
			s.handlePushProperties(w, r, parts[1])
			return
		}
		http.NotFound(w, r)
	case "security":
		s.handlePushSecurity(w, r)
	case "lights":
		s.handleGetLights(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrAccessoryNotFound), errors.Is(err, translator.ErrUnknownCharacteristic):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrNoSnapshot):
		status = http.StatusServiceUnavailable
	case errors.Is(err, translator.ErrInvalidWindowPosition):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleGetAccessories(w http.ResponseWriter, r *http.Request) {
	accessories, err := s.bridge.GetAccessories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, accessories)
}

func (s *Server) handleGetAccessory(w http.ResponseWriter, r *http.Request, id string) {
	accessory, err := s.bridge.GetAccessory(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, accessory)
}

func (s *Server) handleReadCharacteristic(w http.ResponseWriter, r *http.Request, id, name string) {
	value, err := s.bridge.ReadCharacteristic(r.Context(), id, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// NaN and Inf have no JSON form.
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		value = nil
	}
	s.writeJSON(w, map[string]interface{}{"name": name, "value": value})
}

func (s *Server) handlePushProperties(w http.ResponseWriter, r *http.Request, deviceID string) {
	if r.Method != "PUT" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var props model.Properties
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.bridge.IngestProperties(r.Context(), deviceID, props); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePushSecurity(w http.ResponseWriter, r *http.Request) {
	if r.Method != "PUT" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Value model.SecurityStatus `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.bridge.IngestSecurityStatus(r.Context(), body.Value); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetLights(w http.ResponseWriter, r *http.Request) {
	lights, err := s.bridge.GetLights(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, lights)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cfg, err := s.bridge.GetConfig(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, cfg)
}
