package presence

import "DentEase/impl/core"

type Core interface {
	Presence() core.Presence
	SetPresence(online bool) core.Presence
	FeedStatus() (map[string]bool, bool)
}
