// FILE: internal/dto/admin_log_dto.go
package dto

type LogListRequest struct {
	Level string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

// LogResponse uses a string id because log ids are content hashes.
type LogResponse struct {
	Id        string                 `json:"id"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
}
