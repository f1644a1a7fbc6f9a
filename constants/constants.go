package constants

import "os"

func GetConfigPath() string {
	return os.Getenv("SCORELAYOUT_CONFIG")
}

func GetPort() string {
	port := os.Getenv("SCORELAYOUT_PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// 16 quants to a quarter note, so a sixty-fourth is the smallest unit
const QuantsPerQuarter = 16

const QuantsPerWholeNote = 4 * QuantsPerQuarter

// how close (in quants) a click must be to an event start to snap onto it
const MagnetThreshold = 3
