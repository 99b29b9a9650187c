package commands

import (
	"fmt"
	"net/url"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/settings"
)

// Where the effective feed URL came from.
const (
	OriginNone     = "none"
	OriginOverride = "override" // --feed flag or TASKBOARD_FEED_URL
	OriginSaved    = "saved"    // settings file
)

// ResolveFeedURL returns the feed URL in effect: an override from the command
// line or environment, else the saved setting, else none.
func ResolveFeedURL(cfg *config.Config) (string, string, error) {
	if u := strings.TrimSpace(cfg.FeedURL); u != "" {
		return u, OriginOverride, nil
	}
	saved, err := settings.Open(cfg.SettingsPath()).FeedURL()
	if err != nil {
		return "", OriginNone, err
	}
	if saved = strings.TrimSpace(saved); saved != "" {
		return saved, OriginSaved, nil
	}
	return "", OriginNone, nil
}

// ValidateFeedURL checks that raw is an absolute http(s) URL.
func ValidateFeedURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %s", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid feed URL (want http or https): %s", raw)
	}
	return nil
}
