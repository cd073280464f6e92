package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dom/banner-admin/internal/websocket"
	ws "github.com/gorilla/websocket"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		seedCmd(apiURL, args)
	case "watch":
		watchCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Banner Simulator - Development tool for the banner admin API

USAGE:
  simulator <command> [options]

COMMANDS:
  seed      Create an admin account (if missing) and a set of demo banners
  watch     Connect to the live feed and print every event
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8000)

EXAMPLES:
  # Create 3 demo banners, one of them visible with a 30s countdown
  simulator seed --count=3 --countdown=30

  # Tail the live feed
  simulator watch --email=admin@example.com --password=admin`)
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	email := fs.String("email", "admin@example.com", "Admin email")
	password := fs.String("password", "admin", "Admin password")
	count := fs.Int("count", 3, "Number of banners to create")
	countdown := fs.Int("countdown", 30, "Countdown in seconds for the first banner (0 disables)")
	fs.Parse(args)

	if *count < 1 {
		fmt.Println("Error: --count must be at least 1")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Banner Simulator: Seed ===")
	fmt.Println()

	fmt.Printf("Authenticating %s... ", *email)
	login, err := client.Authenticate(*email, *password)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (token expires %s)\n", login.ExpiresAt.Format("15:04:05"))

	fmt.Println()
	fmt.Printf("Creating %d banners:\n", *count)
	for i := 0; i < *count; i++ {
		banner := Banner{
			Title:       fmt.Sprintf("Demo banner %d", i+1),
			Description: "Seeded by the simulator",
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/banner%d/1200/300", i+1),
			Link:        "https://example.com",
		}
		// Only the first banner is shown, so the dashboard has one live countdown
		if i == 0 {
			banner.Visible = true
			banner.Countdown = *countdown
		}

		created, err := client.CreateBanner(login.Token, banner)
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED: %v\n", i+1, *count, err)
			os.Exit(1)
		}
		fmt.Printf("  [%d/%d] %s (%s) visible=%t countdown=%d\n",
			i+1, *count, created.Title, created.ID, created.Visible, created.Countdown)
	}

	banners, err := client.ListBanners()
	if err != nil {
		fmt.Printf("Warning: failed to list banners: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("Done. %d banners stored.\n", len(banners))
}

func watchCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	email := fs.String("email", "admin@example.com", "Account email")
	password := fs.String("password", "admin", "Account password")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	login, err := client.Authenticate(*email, *password)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	wsURL := strings.Replace(apiURL, "http", "ws", 1) + "/api/v1/ws?token=" + url.QueryEscape(login.Token)
	conn, _, err := ws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		fmt.Printf("Error: failed to connect to feed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected. Waiting for events (Ctrl+C to quit)...")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Printf("Connection closed: %v\n", err)
			return
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			fmt.Printf("  (unparseable frame) %s\n", string(data))
			continue
		}
		fmt.Printf("  %-18s %s\n", msg.Type, string(msg.Payload))
	}
}
