package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cropscope/cropscope-research-cli/internal/analysis"
	"github.com/cropscope/cropscope-research-cli/internal/properties"
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func sendDiscordNotification(url, title, description string, color int) error {
	if url == "" {
		return nil
	}

	message := DiscordMessage{
		Embeds: []DiscordEmbed{
			{
				Title:       title,
				Description: description,
				Color:       color,
			},
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}

func SendDiscordErrorNotification(errorMessage string) error {
	return sendDiscordNotification(
		properties.DiscordErrorNotificationUrl(),
		"🚨 CropScope CLI Error",
		fmt.Sprintf("An error occurred: %s", errorMessage),
		16711680, // Red color
	)
}

func SendDiscordSuccessNotification(successMessage string) error {
	return sendDiscordNotification(
		properties.DiscordSuccessNotificationUrl(),
		"✅ CropScope CLI",
		successMessage,
		65280, // Green color
	)
}

func SendDiscordWarnNotification(warnMessage string) error {
	return sendDiscordNotification(
		properties.DiscordWarnNotificationUrl(),
		"⚠️ CropScope CLI Warning",
		warnMessage,
		16753920, // Orange color
	)
}

// SendDiscordPestAlert raises a warn notification for a scene's high
// severity pest detections. Scenes without one send nothing.
func SendDiscordPestAlert(scene string, detections []analysis.PestDetection) error {
	var lines []string
	for _, detection := range detections {
		if detection.Severity != "High" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%.0f%% confidence): %s",
			detection.Type, detection.Confidence*100, detection.Recommendation))
	}
	if len(lines) == 0 {
		return nil
	}
	return SendDiscordWarnNotification(fmt.Sprintf(
		"High severity pest detections in %s:\n%s", scene, strings.Join(lines, "\n")))
}
