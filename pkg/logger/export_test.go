package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// reset tears down the singleton so that the next Init call rebuilds it.
func reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}
