package main

import (
	"flag"
	"log"

	"promptcoach/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "analysis server base URL")
	flag.Parse()

	program := tea.NewProgram(tui.New(tui.NewClient(*server)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Failed to run UI: %v", err)
	}
}
