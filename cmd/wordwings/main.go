package main

import (
	"fmt"
	"log/slog"
	"os"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = cmdInit()
	case "sync":
		err = cmdSync()
	case "watch":
		err = cmdWatch()
	case "pending":
		err = cmdPending()
	case "progress":
		err = cmdProgress(os.Args[2:])
	case "mastery":
		err = cmdMastery(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "content":
		err = cmdContent(os.Args[2:])
	case "reset":
		err = cmdReset(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("wordwings %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`WordWings - reading practice progress & sync core

Usage:
  wordwings <command> [arguments]

Setup Commands:
  init                Initialize local storage and default config

Sync Commands:
  sync                Drain the pending-mutation queue once
  watch               Drain the queue periodically until interrupted
  pending             Show how many changes are waiting to sync

Data Commands:
  progress <learner> [content]   Show locally stored progress
  mastery <learner>              Show mastered items
  stats <learner>                Show aggregate learner statistics
  content list                   List the content catalog
  content refresh                Bust the catalog cache
  reset <learner>                Delete a learner's local data

Other Commands:
  version             Show version
  help                Show this help`)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
