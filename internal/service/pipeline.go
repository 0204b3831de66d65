package service

import "github.com/shenikar/accident_alert_system/internal/models"

// SeverityClassifier - загруженная при старте модель классификации показаний датчиков
type SeverityClassifier interface {
	Classify(sample models.SensorSample) models.Severity
}

// IntentDetector распознает просьбу о помощи в расшифровке голоса
type IntentDetector interface {
	Detect(transcript string) bool
}
