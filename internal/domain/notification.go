package domain

import "errors"

// NotificationKind is the severity of a toast shown to the user.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "SUCCESS"
	NotificationError   NotificationKind = "ERROR"
	NotificationInfo    NotificationKind = "INFO"
)

func (k NotificationKind) String() string { return string(k) }

// Notification is a short user-facing message with its icon and color.
type Notification struct {
	Message string
	Kind    NotificationKind
	Icon    string
	Color   string
}

// Messages shown on the page.
const (
	MsgQuizNotFound       = "Quiz not found!"
	MsgSelectAnswer       = "Please select an answer!"
	MsgInvalidOption      = "Please choose one of the listed answers."
	MsgQuizComplete       = "This quiz is already finished."
	MsgSessionNotFound    = "Quiz session expired. Please start again."
	MsgEnterWord          = "Please enter a word!"
	MsgWordNotFound       = "Word not found. Please check the spelling."
	MsgAudioUnavailable   = "Audio not available for this word."
	MsgNetworkUnavailable = "Failed to fetch word. Please check your internet or try later."
	MsgPlanNotFound       = "Plan not found!"
	MsgSectionNotFound    = "Section not found!"
	MsgRegistrationOK     = "Registration successful!"
	MsgPaymentOK          = "Payment successful!"
	MsgTooManyRequests    = "Too many requests. Please wait a moment."
	MsgInternal           = "Something went wrong. Please try again."
)

// Success builds a green check notification.
func Success(message string) Notification {
	return Notification{Message: message, Kind: NotificationSuccess, Icon: "check-circle", Color: "green"}
}

// Failure builds a red exclamation notification.
func Failure(message string) Notification {
	return Notification{Message: message, Kind: NotificationError, Icon: "exclamation-circle", Color: "red"}
}

// Info builds a blue informational notification with the given icon.
func Info(message, icon string) Notification {
	return Notification{Message: message, Kind: NotificationInfo, Icon: icon, Color: "blue"}
}

// NotificationFor maps a user-facing error to the toast that reports it.
// The second result is false for errors that are not meant for the user.
func NotificationFor(err error) (Notification, bool) {
	var verr *ValidationError

	switch {
	case err == nil:
		return Notification{}, false
	case errors.Is(err, ErrCategoryNotFound):
		return Failure(MsgQuizNotFound), true
	case errors.Is(err, ErrSessionNotFound):
		return Failure(MsgSessionNotFound), true
	case errors.Is(err, ErrNoAnswerSelected):
		return Failure(MsgSelectAnswer), true
	case errors.Is(err, ErrInvalidOption):
		return Failure(MsgInvalidOption), true
	case errors.Is(err, ErrQuizComplete):
		return Failure(MsgQuizComplete), true
	case errors.Is(err, ErrEmptyQuery):
		return Failure(MsgEnterWord), true
	case errors.Is(err, ErrWordNotFound):
		return Failure(MsgWordNotFound), true
	case errors.Is(err, ErrAudioUnavailable):
		return Info(MsgAudioUnavailable, "volume-up"), true
	case errors.Is(err, ErrNetworkUnavailable):
		return Failure(MsgNetworkUnavailable), true
	case errors.Is(err, ErrPlanNotFound):
		return Failure(MsgPlanNotFound), true
	case errors.Is(err, ErrSectionNotFound):
		return Failure(MsgSectionNotFound), true
	case errors.As(err, &verr):
		return Failure(verr.Error()), true
	}
	return Notification{}, false
}
