package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNoEmergencyDetected = errors.New("no emergency detected")
	ErrTransport           = errors.New("transport error")
	ErrPersistence         = errors.New("persistence error")

	ErrMissingDeviceToken = fmt.Errorf("%w: missing device_token", ErrInvalidInput)
)
