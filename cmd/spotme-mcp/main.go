package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/spotme/internal/mcp"
	"github.com/claude/spotme/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// spotme-mcp exposes the workout log over MCP stdio. It reads either a local
// database file or a running SpotMe server over its REST API.
func main() {
	dbPath := flag.String("db", "", "path to local database file")
	serverURL := flag.String("server", "", "base URL of a running SpotMe server (e.g. http://spotme:8080)")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("using remote data source", "url", *serverURL)
	case *dbPath != "":
		if err := storage.RunMigrations(*dbPath); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		db, err := storage.Open(context.Background(), *dbPath)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("using local data source", "path", *dbPath)
	default:
		log.Error("either -db or -server is required")
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
