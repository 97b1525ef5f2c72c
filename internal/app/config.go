package app

import (
	"net/http"

	"go.uber.org/zap"

	"progman/internal/config"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string         // key directory, e.g. $HOME/.progman
	Settings  *config.Config // loaded config.yaml plus environment
	Log       *zap.Logger    // optional; defaults to a no-op logger
	HTTP      *http.Client   // optional; defaults to one built from the network timeout
	Overwrite bool           // allow account generation to replace an existing key
}
