package handlers

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"tradebot/pkg/utils"
)

var fastJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse - стандартный формат ошибки API
type ErrorResponse struct {
	Error   string `json:"error"`             // Человекочитаемое сообщение
	Code    string `json:"code"`              // Машиночитаемый код ошибки
	Details string `json:"details,omitempty"` // Дополнительные детали
}

// SuccessResponse - стандартный формат успешного ответа с сообщением
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// respondWithJSON отправляет JSON ответ
func respondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := fastJSON.NewEncoder(w).Encode(data); err != nil {
		utils.L().WithComponent("http").Error("Failed to encode response", utils.Err(err))
	}
}

// respondWithError отправляет JSON ответ с ошибкой
func respondWithError(w http.ResponseWriter, statusCode int, code, message, details string) {
	respondWithJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// decodeField извлекает одно поле из сырого JSON объекта.
// Возвращает true только если поле присутствует и имеет ожидаемый тип;
// поле с неожиданным типом пропускается, не валя весь запрос.
func decodeField(raw map[string]jsoniter.RawMessage, key string, dst interface{}) bool {
	v, ok := raw[key]
	if !ok {
		return false
	}
	return fastJSON.Unmarshal(v, dst) == nil
}
