// SPDX-License-Identifier: MIT
// Command spirotune runs calibration trials for the trochoid parameter
// selectors, auto-tunes their effort knobs, and keeps reports in a store.
//
// Usage:
//
//	spirotune run       [-samples N] [-seed S] [-constraint C] [-evolution E] [-only LEVEL] [-save]
//	spirotune autotune  [-auto-samples N] [-iterations K] [-step-m ...] [-max-m ...] [-out FILE]
//	spirotune reports   [-store KIND] [-db-path FILE]
//	spirotune show      -id ID [-store KIND] [-db-path FILE]
//	spirotune profiles  [-profiles FILE]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runTrials(ctx, args[1:], stdout, stderr)
	case "autotune":
		return runAutoTune(ctx, args[1:], stdout, stderr)
	case "reports":
		return runReports(ctx, args[1:], stdout)
	case "show":
		return runShow(ctx, args[1:], stdout)
	case "profiles":
		return runProfiles(args[1:], stdout)
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: spirotune <run|autotune|reports|show|profiles> [flags]", msg)
}
