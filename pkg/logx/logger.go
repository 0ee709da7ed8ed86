package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment normaliza o valor; desconhecido cai em Development.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

// New monta o logger do processo: JSON em produção, console legível fora dela.
func New(env Environment) zerolog.Logger {
	switch env {
	case Production:
		return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case Testing:
		return zerolog.Nop()
	default:
		return zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.DebugLevel).With().Timestamp().Caller().Logger()
	}
}

// Init configura também o logger global (zerolog/log).
func Init(env Environment) zerolog.Logger {
	l := New(env)
	log.Logger = l
	return l
}
