package system

import (
	"fmt"
	"os"

	"github.com/rook-computer/sysdeck/internal/logging"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl

	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

// Console switches the active virtual terminal out of the way while the
// framebuffer backend owns the screen.
type Console struct {
	Logger logging.Logger
}

// EnterGraphics sets KD_GRAPHICS and hides the cursor. Both steps are
// attempted; the first error is returned.
func (c Console) EnterGraphics() error {
	modeErr := setConsoleMode(kdGraphics)
	c.report("KD_GRAPHICS", modeErr)
	cursorErr := writeVT(hideCursorSeq)
	c.report("hide cursor", cursorErr)
	if modeErr != nil {
		return modeErr
	}
	return cursorErr
}

// Restore puts the console back into text mode with a visible cursor.
func (c Console) Restore() error {
	modeErr := setConsoleMode(kdText)
	c.report("KD_TEXT", modeErr)
	cursorErr := writeVT(showCursorSeq)
	c.report("show cursor", cursorErr)
	if modeErr != nil {
		return modeErr
	}
	return cursorErr
}

func (c Console) report(step string, err error) {
	if c.Logger == nil {
		return
	}
	if err != nil {
		c.Logger.Errorf("tty", "%s failed: %v", step, err)
		return
	}
	c.Logger.Debugf("tty", "%s done", step)
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
