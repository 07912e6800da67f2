package settings

import "DentEase/impl/core"

type Core interface {
	Settings() core.Settings
	SetOperatorName(name string) core.Settings
}
