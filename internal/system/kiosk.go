package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterKiosk puts the console into graphics mode with the cursor hidden.
// Failures are logged and otherwise ignored; the returned func undoes both.
func EnterKiosk(l logger) (restore func()) {
	logResult(l, "KD_GRAPHICS set", SetGraphicsMode())
	logResult(l, "cursor hidden", HideCursor())
	return func() {
		logResult(l, "cursor shown", ShowCursor())
		logResult(l, "KD_TEXT set", RestoreTextMode())
	}
}

func logResult(l logger, ok string, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%v", err)
		return
	}
	l.Infof("tty", "%s", ok)
}
