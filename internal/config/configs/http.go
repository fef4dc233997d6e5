package configs

import "time"

// HTTP defines configuration for the HTTP server. ShutdownTimeout bounds
// graceful shutdown after a termination signal.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port            uint16        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
