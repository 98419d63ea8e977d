// One-shot notifications surfaced to the UI layer.
package engine

import "log/slog"

// NotificationKind categorizes a notification.
type NotificationKind string

const (
	NotifyLevelUp         NotificationKind = "level_up"
	NotifyEvaluationReady NotificationKind = "evaluation_ready"
	NotifyMissionComplete NotificationKind = "mission_complete"
	NotifyAchievement     NotificationKind = "achievement_unlocked"
)

// Notification is a one-shot event emitted by the simulation.
type Notification struct {
	ID      int              `json:"id"`
	Week    int              `json:"week"` // total weeks at emission
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// maxNotifications bounds the in-memory feed; older entries live in the
// persistence event log.
const maxNotifications = 200

func (s *Simulation) notify(kind NotificationKind, message string) {
	s.nextNotifID++
	n := Notification{
		ID:      s.nextNotifID,
		Week:    s.state.Date.TotalWeeks,
		Kind:    kind,
		Message: message,
	}
	s.notifications = append(s.notifications, n)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}
	slog.Info("notification", "kind", kind, "message", message)
}

// Notifications returns the in-memory feed, newest last.
func (s *Simulation) Notifications() []Notification {
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// DrainNotifications returns the feed and clears it. Used by consumers
// that persist or push each entry exactly once.
func (s *Simulation) DrainNotifications() []Notification {
	out := s.notifications
	s.notifications = nil
	return out
}
