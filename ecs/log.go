package ecs

import (
	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with world-aware helpers.
type Logger struct {
	*zerolog.Logger
}

func NewLogger(logger zerolog.Logger) Logger {
	return Logger{&logger}
}

// CreateSystemLogger creates a sub logger with the entry {"system": name}.
func (l Logger) CreateSystemLogger(name string) Logger {
	sub := l.Logger.With().Str("system", name).Logger()
	return Logger{&sub}
}

// LogWorld logs the registered components and entity count of the world.
func (l Logger) LogWorld(w *World, level zerolog.Level) {
	event := l.WithLevel(level)
	event.Int("total_entities", w.EntityCount())
	arr := zerolog.Arr()
	for _, name := range w.ComponentNames() {
		arr = arr.Str(name)
	}
	event.Int("total_components", len(w.ComponentNames()))
	event.Array("components", arr)
	event.Send()
}
