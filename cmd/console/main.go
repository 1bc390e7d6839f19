package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	profiles, err := listProfiles(client, cfg.APIBaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list profiles: %v\n", err)
		os.Exit(1)
	}

	var profileID string
	if len(profiles) == 0 {
		fmt.Print("No profiles yet. Enter a name for your hero: ")
		name := readLine(reader)
		if name == "" {
			fmt.Fprintf(os.Stderr, "A name is required\n")
			os.Exit(1)
		}
		p, err := createProfile(client, cfg.APIBaseURL, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create profile: %v\n", err)
			os.Exit(1)
		}
		profileID = p.ID
	} else {
		fmt.Println("Profiles:")
		for i, p := range profiles {
			fmt.Printf("  %d - %s (%d shards, %d wins)\n", i+1, p.Name, p.Currency, p.Stats.Wins)
		}
		fmt.Print("\nSelect a profile by number: ")
		var choice int
		if _, err := fmt.Scanf("%d\n", &choice); err != nil || choice < 1 || choice > len(profiles) {
			fmt.Fprintf(os.Stderr, "Invalid selection\n")
			os.Exit(1)
		}
		profileID = profiles[choice-1].ID
	}

	packs, err := listPacks(client, cfg.APIBaseURL)
	if err != nil || len(packs) == 0 {
		fmt.Fprintf(os.Stderr, "Failed to list word packs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nWord Packs:")
	for i, id := range packs {
		fmt.Printf("  %d - %s\n", i+1, id)
	}
	fmt.Print("\nSelect a pack by number: ")

	var choice int
	if _, err := fmt.Scanf("%d\n", &choice); err != nil || choice < 1 || choice > len(packs) {
		fmt.Fprintf(os.Stderr, "Invalid selection\n")
		os.Exit(1)
	}
	packID := packs[choice-1]

	fmt.Print("Name this run (blank for the pack name): ")
	saveName := readLine(reader)
	if saveName == "" {
		saveName = packID
	}

	run, err := createRun(client, cfg.APIBaseURL, CreateRunRequest{
		ProfileID: profileID,
		PackID:    packID,
		SaveName:  saveName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create run: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, run),
		tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
