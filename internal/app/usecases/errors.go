package usecases

import "errors"

var (
	ErrAlreadyRunning = errors.New("engine is already running")
	ErrEngineClosed   = errors.New("engine is closed")
	ErrNoFlowLoaded   = errors.New("no flow loaded")
)
