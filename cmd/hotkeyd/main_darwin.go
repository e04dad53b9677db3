//go:build darwin

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

// The Carbon hotkey backend and the tray both need the main event loop;
// mainthread owns it here, so the tray is not started on macOS.
const trayAvailable = false

func init() {
	runtime.LockOSThread()
}

func main() {
	code := 0
	mainthread.Init(func() { code = run() })
	os.Exit(code)
}
