package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
)

var (
	// StyleTitle for headings
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleValue for data values
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const iconSuccess = "✓"

func printSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printKeyValue(key, value string) {
	fmt.Printf("  %s %s\n", styleKey.Render(key), StyleValue.Render(value))
}

func printFile(path string) {
	fmt.Printf("  %s %s\n", styleKey.Render("wrote"), StyleValue.Render(path))
}

// printSwatch shows a block filled with hex next to its name
func printSwatch(name, hex string) {
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("      ")
	fmt.Printf("  %s %s %s\n", styleKey.Render(name), block, StyleValue.Render(hex))
}
