package instance

import "os"

const fallbackID = "stationdesk-0"

// ID identifies this process in logs. STATIONDESK_INSTANCE_ID wins over the
// host name.
func ID() string {
	if id := os.Getenv("STATIONDESK_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
