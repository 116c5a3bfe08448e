package handler

import (
	"net/http"

	"sportify-admin/internal/model"
)

// ConfigHandler exposes the build-time values the dashboard needs before
// its first API call.
type ConfigHandler struct {
	config model.AppConfig
}

func NewConfigHandler(config model.AppConfig) *ConfigHandler {
	return &ConfigHandler{config: config}
}

func (h *ConfigHandler) AppConfig(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeSuccess(w, http.StatusOK, h.config)
}
