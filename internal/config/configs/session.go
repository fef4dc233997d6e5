package configs

import "time"

// Sessions bounds the client session registry. A session unused for
// IdleTTL is dropped by a sweep every SweepInterval; Max caps how many
// can be open at once. Zero disables the respective limit.
type Sessions struct {
	IdleTTL       time.Duration `env:"IDLE_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	Max           int           `env:"MAX" envDefault:"10000"`
}
