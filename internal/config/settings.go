package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Profile describes the portfolio owner published as a vCard.
type Profile struct {
	Name       string
	GivenName  string
	FamilyName string
	Email      string
	Title      string
	URL        string
	Phone      string
}

// RelaySettings locates the third-party mail relay used by the contact form.
type RelaySettings struct {
	URL        string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Configured reports whether enough is known to call the relay.
func (r RelaySettings) Configured() bool {
	return r.URL != "" && r.ServiceID != "" && r.TemplateID != "" && r.PublicKey != ""
}

// Settings holds the runtime configuration of the headless binaries.
type Settings struct {
	Port           string
	BindAddr       string
	Language       string
	AllowedOrigins []string
	GeocodingURL   string
	ForecastURL    string
	Relay          RelaySettings
	Owner          Profile
}

// Addr returns the listen address of the HTTP API.
func (s Settings) Addr() string {
	return s.BindAddr + AddrSeparator + s.Port
}

// LoadSettings reads the environment, first merging the given .env files.
// A missing env file is not an error; a malformed one is.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("%s: %w", ErrEnvLoad, err)
		}
	}

	s := Settings{
		Port:           envOr(EnvPort, DefaultPort),
		BindAddr:       envOr(EnvBindAddr, DefaultBindAddr),
		Language:       envOr(EnvLanguage, DefaultLanguage),
		AllowedOrigins: splitList(os.Getenv(EnvAllowedOrigins)),
		GeocodingURL:   envOr(EnvGeocodingURL, DefaultGeocodingURL),
		ForecastURL:    envOr(EnvForecastURL, DefaultForecastURL),
		Relay: RelaySettings{
			URL:        envOr(EnvRelayURL, DefaultRelayURL),
			ServiceID:  os.Getenv(EnvRelayService),
			TemplateID: os.Getenv(EnvRelayTemplate),
			PublicKey:  os.Getenv(EnvRelayPublicKey),
		},
		Owner: Profile{
			Name:       os.Getenv(EnvOwnerName),
			GivenName:  os.Getenv(EnvOwnerGivenName),
			FamilyName: os.Getenv(EnvOwnerFamilyName),
			Email:      os.Getenv(EnvOwnerEmail),
			Title:      os.Getenv(EnvOwnerTitle),
			URL:        os.Getenv(EnvOwnerURL),
			Phone:      os.Getenv(EnvOwnerPhone),
		},
	}

	if err := ValidatePort(s.Port); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ValidatePort checks that a port string is a number within the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if p < MinPort || p > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ListSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
