package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin with validation
func ReadInt(prompt string, min, max int) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadPositiveInt reads a positive integer from stdin
func ReadPositiveInt(prompt string) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid number: %s. Please enter a positive integer", input)
	}

	return value, nil
}

// ReadScenePath reads a scene file path and checks that it exists
func ReadScenePath() (string, error) {
	path := ReadString("Enter the scene file path: ")
	if path == "" {
		return "", fmt.Errorf("scene file path cannot be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("scene file not found: %s", path)
	}
	return path, nil
}

// ReadNoiseChoice asks whether model measurement noise should be applied
func ReadNoiseChoice() bool {
	answer := strings.ToLower(ReadString("Apply model measurement noise? (y/N): "))
	return answer == "y" || answer == "yes"
}
