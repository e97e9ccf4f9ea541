package reminder

import (
	"go.uber.org/fx"
)

var (
	Module = fx.Provide(
		NewGenerator,
		NewScheduler,
	)
)
