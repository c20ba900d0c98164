package properties

import (
	"os"
	"strconv"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

// BandTolerance is the maximum distance in nanometers between an index's
// target wavelength and the nearest cube band before the index is skipped.
func BandTolerance() float64 {
	raw := os.Getenv("BAND_TOLERANCE_NM")
	if raw == "" {
		return 20.0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 20.0
	}
	return value
}

type Color struct {
	R, G, B uint8
}

// SeverityColorMap colors pest detection markers on rendered overlays.
var SeverityColorMap = map[string]Color{
	"High":   {255, 0, 0},
	"Medium": {255, 165, 0},
	"Low":    {255, 255, 0},
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}
func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
func DiscordWarnNotificationUrl() string {
	return os.Getenv("DISCORD_WARN_NOTIFICATION_URL")
}
