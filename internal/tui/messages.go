package tui

import (
	"time"

	"github.com/jmylchreest/bouncy/internal/config"
)

type tickMsg time.Time

type configReloadedMsg struct {
	cfg *config.Config
}
