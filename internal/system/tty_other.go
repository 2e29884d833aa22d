//go:build !unix

package system

import "errors"

func setConsoleMode(mode int) error { return errors.ErrUnsupported }
