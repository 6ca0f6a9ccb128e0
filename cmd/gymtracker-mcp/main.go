package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/asisr38/home-gym-tracker-app/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "gym tracker server URL (e.g. https://gymtracker.tail1234.ts.net)")
	token := flag.String("token", "", "bearer token for the user-data API")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymtracker-mcp", Version)
		return
	}

	// Log to stderr: stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *token == "" {
		*token = os.Getenv("GYMTRACKER_TOKEN")
	}
	if *serverURL == "" || *token == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymtracker-mcp -server <URL> -token <token>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ds := mcp.NewHTTPClient(*serverURL, *token)
	s := mcp.New(ds, Version, log)

	log.Info("mcp server starting", "server", *serverURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
