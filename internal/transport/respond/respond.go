// Package respond writes JSON responses shared by the HTTP and WebSocket layers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// NotificationDTO is the wire form of a toast.
type NotificationDTO struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// ErrorBody is the body of every 4xx/5xx response.
type ErrorBody struct {
	Notification NotificationDTO `json:"notification"`
}

// ToNotificationDTO converts a domain notification to its wire form.
func ToNotificationDTO(n domain.Notification) NotificationDTO {
	return NotificationDTO{
		Message: n.Message,
		Kind:    n.Kind.String(),
		Icon:    n.Icon,
		Color:   n.Color,
	}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Notification writes n as an error body with the given status.
func Notification(w http.ResponseWriter, status int, n domain.Notification) {
	JSON(w, status, ErrorBody{Notification: ToNotificationDTO(n)})
}
