package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// TakeConsole puts the console in graphics mode with the cursor hidden so the
// framebuffer is not overdrawn. The returned function undoes both. Failures
// are logged and otherwise ignored.
func TakeConsole(l logger) (restore func()) {
	logStep(l, "KD_GRAPHICS set", "KD_GRAPHICS failed", SetGraphicsMode())
	logStep(l, "cursor hidden", "hide cursor failed", HideCursor())
	return func() {
		logStep(l, "KD_TEXT set", "KD_TEXT failed", RestoreTextMode())
		logStep(l, "cursor shown", "show cursor failed", ShowCursor())
	}
}

func logStep(l logger, ok, failed string, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}
