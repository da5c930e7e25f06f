//go:build !linux

package input

import "context"

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevSource is silent on platforms without evdev.
type EvdevSource struct {
	Pattern string
	Logger  logger
	ch      chan Event
}

func NewEvdevSource(width, height int, l logger) *EvdevSource {
	return &EvdevSource{Logger: l, ch: make(chan Event)}
}

func (s *EvdevSource) Events() <-chan Event { return s.ch }

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.Logger != nil {
		s.Logger.Infof("input", "evdev input is only available on linux")
	}
	return nil
}

func (s *EvdevSource) Stop() error { return nil }
