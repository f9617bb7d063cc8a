package events

import "context"

// Event types
const (
	EventQuestionPosted    = "question_posted"
	EventAnswerPosted      = "answer_posted"
	EventMaintenanceStatus = "maintenance_status_changed"
)

// StreamQuestions carries Q&A thread events for connected watchers.
const StreamQuestions = "events:question"

// StreamMaintenance carries maintenance status changes.
const StreamMaintenance = "events:maintenance"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
