package loop

import "time"

// Frame pacing.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Sessions.
const (
	DefaultIdleTimeout = 120 * time.Second
	ShutdownDisplay    = 5 * time.Second // Notice shown before a server shutdown disconnects
	RestartGrace       = time.Second     // Restart is ignored right after a game over
)

// Notification feed.
const (
	ToastTTL  = 3 * time.Second
	MaxToasts = 4
)

// Starfield.
const (
	starCount  = 80
	starLayers = 3
)
