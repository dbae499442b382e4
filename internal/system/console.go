package system

// Logger is the subset of the application logger used here.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Console holds the VT in graphics mode with the cursor hidden for the
// lifetime of the splash. Failures are logged and otherwise ignored.
type Console struct {
	Logger Logger
	active bool
}

func (c *Console) Acquire() {
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
	if err := SetGraphicsMode(); err != nil {
		c.Logger.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		c.Logger.Infof("tty", "KD_GRAPHICS set")
	}
	if err := HideCursor(); err != nil {
		c.Logger.Errorf("tty", "hide cursor failed: %v", err)
	}
	c.active = true
}

// Release undoes Acquire. It is a no-op if Acquire was not called.
func (c *Console) Release() {
	if !c.active {
		return
	}
	c.active = false
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
	if err := ShowCursor(); err != nil {
		c.Logger.Errorf("tty", "show cursor failed: %v", err)
	}
	if err := RestoreTextMode(); err != nil {
		c.Logger.Errorf("tty", "KD_TEXT failed: %v", err)
	} else {
		c.Logger.Infof("tty", "KD_TEXT set")
	}
}

type nopLogger struct{}

func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}
