package ws

import (
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

// MessageType tags every server message.
type MessageType string

const (
	MessageTypeQuestion     = MessageType("question")
	MessageTypeTimer        = MessageType("timer")
	MessageTypeScore        = MessageType("score")
	MessageTypeNotification = MessageType("notification")
)

// Client actions.
const (
	ActionAnswer  = "answer"
	ActionAdvance = "advance"
	ActionRetreat = "retreat"
)

// ServerMessage is what the server pushes to a connected page. Exactly one
// payload field is set, matching Type.
type ServerMessage struct {
	Type         MessageType              `json:"type"`
	Question     *respond.QuestionDTO     `json:"question,omitempty"`
	Timer        *respond.TimerDTO        `json:"timer,omitempty"`
	Score        *respond.ScoreDTO        `json:"score,omitempty"`
	Notification *respond.NotificationDTO `json:"notification,omitempty"`
}

// ClientMessage is what a page sends over the socket.
type ClientMessage struct {
	Action string `json:"action"`
	Option *int   `json:"option,omitempty"`
}
