package chat

import "time"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleResponder Role = "responder"
)

// ResponderTag names one of the specialist responders.
type ResponderTag string

const (
	TagPoet      ResponderTag = "UniversityPoet"
	TagScheduler ResponderTag = "SchedulingAssistant"
	TagAdvisor   ResponderTag = "CourseAdvisor"
)

// SpeakerUser marks user turns in the transcript.
const SpeakerUser = "user"

// Turn persists one utterance or responder reply. Immutable once appended.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
