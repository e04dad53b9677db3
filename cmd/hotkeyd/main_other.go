//go:build !darwin

package main

import "os"

const trayAvailable = true

func main() {
	os.Exit(run())
}
