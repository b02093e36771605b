package activity

import (
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
)

// LogEntry is what callers hand to the logger; ID and Timestamp are
// assigned on write.
type LogEntry struct {
	Action     Action
	Actor      auth.Actor
	TargetID   string
	TargetName string
	Department string
	Details    map[string]any
}

type ActivityFilter struct {
	Action     string
	Department string
	TargetID   string
	Limit      int
}

type ActivityResponse struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	ActorID    string         `json:"actor_id"`
	ActorName  string         `json:"actor_name,omitempty"`
	ActorRole  string         `json:"actor_role,omitempty"`
	TargetID   string         `json:"target_id,omitempty"`
	TargetName string         `json:"target_name,omitempty"`
	Department string         `json:"department,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

func ToResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:         a.ID,
		Action:     string(a.Action),
		ActorID:    a.ActorID,
		ActorName:  a.ActorName,
		ActorRole:  a.ActorRole,
		TargetID:   a.TargetID,
		TargetName: a.TargetName,
		Department: a.Department,
		Details:    a.Details,
		Timestamp:  a.Timestamp.Format(time.RFC3339),
	}
}
