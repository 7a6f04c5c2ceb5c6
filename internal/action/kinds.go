package action

// Action kind constants. The executable set below is the allow-list the
// walker consults when sampling a path: anything outside it (sentinels,
// annotation markers) is skipped without consuming a caller-visible step.
const (
	KindClick       = "click"
	KindDoubleClick = "doubleclick"
	KindRightClick  = "rightclick"
	KindMoveTo      = "moveto"
	KindDrag        = "drag"
	KindScroll      = "scroll"
	KindType        = "type"
	KindPress       = "press"
	KindHotkey      = "hotkey"
	KindWait        = "wait"
	KindScreenshot  = "screenshot"
	KindUnknown     = "unknown"

	KindSentinel = "sentinel"
)

var executableKinds = map[string]bool{
	KindClick:       true,
	KindDoubleClick: true,
	KindRightClick:  true,
	KindMoveTo:      true,
	KindDrag:        true,
	KindScroll:      true,
	KindType:        true,
	KindPress:       true,
	KindHotkey:      true,
	KindWait:        true,
	KindScreenshot:  true,
	KindUnknown:     true,
}

// Executable reports whether kind is on the walker's allow-list.
func Executable(kind string) bool {
	return executableKinds[kind]
}
