package presence

import (
	"DentEase/entity"
	"time"
)

// Window is how long after their last activity a patient still shows as online.
const Window = 5 * time.Minute

// Status is online iff lastSeen is set and at most Window old. The boundary is
// inclusive: exactly five minutes ago is still online.
func Status(lastSeen, now time.Time) entity.PresenceStatus {
	if lastSeen.IsZero() {
		return entity.Offline
	}
	if now.Sub(lastSeen) <= Window {
		return entity.Online
	}
	return entity.Offline
}
