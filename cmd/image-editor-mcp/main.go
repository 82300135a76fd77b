package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-editor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-editor-mcp - MCP server for editing images")
			fmt.Println()
			fmt.Println("Usage: image-editor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_EDITOR_LOG_LEVEL=debug     Enable debug logging")
			fmt.Printf("  IMAGE_EDITOR_CONFIG=<path>       Settings file (default ./%s)\n", editor.SettingsFile)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_EDITOR_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Image Editor MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	settingsPath := os.Getenv("IMAGE_EDITOR_CONFIG")
	if settingsPath == "" {
		settingsPath = editor.SettingsFile
	}
	settings, err := editor.LoadSettings(settingsPath)
	if err != nil {
		log.Fatalf("Settings error: %v", err)
	}

	sessionOpts := settings.Options()
	if debug {
		log.Printf("Defaults: %+v, debounce %v", settings.Defaults, settings.Debounce())
		sessionOpts = append(sessionOpts, editor.WithLogger(log.Default()))
	}

	srv := server.New(
		server.WithSessionOptions(sessionOpts...),
		server.WithDebug(debug),
	)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
