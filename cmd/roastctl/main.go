package main

import (
	"os"

	"hiremenot/internal/shared/telemetry"
)

func main() {
	err := newRootCmd().Execute()
	telemetry.Sync()
	if err != nil {
		os.Exit(1)
	}
}
