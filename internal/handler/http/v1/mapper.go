package v1

import "github.com/shenikar/accident_alert_system/internal/models"

func coordinateOf(lat, lon *float64) models.Coordinate {
	var coord models.Coordinate
	if lat != nil {
		coord.Latitude = *lat
	}
	if lon != nil {
		coord.Longitude = *lon
	}
	return coord
}

// DTOToSensorSample вызывается после валидации, все признаки присутствуют
func DTOToSensorSample(dto SensorEventRequest) models.SensorSample {
	return models.SensorSample{
		AccX:  *dto.AccX,
		AccY:  *dto.AccY,
		AccZ:  *dto.AccZ,
		GyroX: *dto.GyroX,
		GyroY: *dto.GyroY,
		GyroZ: *dto.GyroZ,
	}
}

func DTOToManualReport(dto ManualIncidentRequest, reporterID *string) models.ManualReport {
	return models.ManualReport{
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Severity:    models.Severity(dto.Severity),
		Description: dto.Description,
		Origin:      models.Origin(dto.ReportedVia),
		ReporterID:  reporterID,
		Dispatch: models.DispatchOptions{
			BroadcastLocal:  dto.BroadcastLocal,
			DurationSeconds: dto.DurationSeconds,
			DeviceTokens:    dto.DeviceTokens,
		},
	}
}

func DTOToLocalAlertModel(dto LocalAlertRequest) *models.LocalAlert {
	return &models.LocalAlert{
		IncidentID:      dto.IncidentID,
		Message:         dto.Message,
		Latitude:        dto.Latitude,
		Longitude:       dto.Longitude,
		Severity:        models.Severity(dto.Severity),
		LocationName:    dto.LocationName,
		DurationSeconds: dto.DurationSeconds,
	}
}

func DTOToCloudAlertModel(dto CloudAlertRequest) *models.CloudAlert {
	body := dto.Body
	if body == "" {
		body = dto.Message
	}
	return &models.CloudAlert{
		IncidentID:  dto.IncidentID,
		DeviceToken: dto.DeviceToken,
		Title:       dto.Title,
		Body:        body,
		Payload:     dto.Data,
		IsEmergency: dto.IsEmergency,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:          model.ID,
		ReporterID:  model.ReporterID,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Severity:    string(model.Severity),
		Description: model.Description,
		ReportedVia: string(model.Origin),
		CreatedAt:   model.CreatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelToManualIncidentResponse(result *models.ManualReportResult) *ManualIncidentResponse {
	resp := &ManualIncidentResponse{
		Incident:    ModelToIncidentResponse(result.Incident),
		CloudAlerts: ModelsToCloudAlertResponses(result.CloudAlerts),
	}
	if result.LocalAlert != nil {
		resp.LocalAlert = ModelToLocalAlertResponse(result.LocalAlert)
	}
	return resp
}

func ModelToLocalAlertResponse(model *models.LocalAlert) *LocalAlertResponse {
	return &LocalAlertResponse{
		ID:              model.ID,
		IncidentID:      model.IncidentID,
		Message:         model.Message,
		Latitude:        model.Latitude,
		Longitude:       model.Longitude,
		Severity:        string(model.Severity),
		LocationName:    model.LocationName,
		DurationSeconds: model.DurationSeconds,
		Status:          string(model.Status),
		CreatedAt:       model.CreatedAt,
	}
}

func ModelToLocalAlertListResponse(list *models.LocalAlertList) *LocalAlertListResponse {
	alerts := make([]*LocalAlertResponse, len(list.Alerts))
	for i, alert := range list.Alerts {
		alerts[i] = ModelToLocalAlertResponse(alert)
	}
	return &LocalAlertListResponse{
		Count:      list.Counts.Total,
		Statistics: list.Counts,
		Alerts:     alerts,
	}
}

func ModelToCloudAlertResponse(model *models.CloudAlert) *CloudAlertResponse {
	return &CloudAlertResponse{
		ID:            model.ID,
		IncidentID:    model.IncidentID,
		DeviceToken:   model.DeviceToken,
		Title:         model.Title,
		Body:          model.Body,
		Data:          model.Payload,
		IsEmergency:   model.IsEmergency,
		Status:        string(model.Status),
		FailureReason: model.FailureReason,
		CreatedAt:     model.CreatedAt,
	}
}

func ModelsToCloudAlertResponses(models []*models.CloudAlert) []*CloudAlertResponse {
	responses := make([]*CloudAlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToCloudAlertResponse(model)
	}
	return responses
}

func ModelToCloudAlertListResponse(list *models.CloudAlertList) *CloudAlertListResponse {
	return &CloudAlertListResponse{
		Count:      list.Counts.Total,
		Statistics: list.Counts,
		Alerts:     ModelsToCloudAlertResponses(list.Alerts),
	}
}
