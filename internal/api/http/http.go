package http

import "time"

type Config struct {
	Port            uint          `mapstructure:"port"`
	AgentToken      string        `mapstructure:"agent_token"`
	AgentStaleAfter time.Duration `mapstructure:"agent_stale_after"`
}
