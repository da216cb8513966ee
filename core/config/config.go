package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"example.com/mailclock/net/udp"
)

// DSCP is the Differentiated Services Codepoint value to be used by senders of
// time synchronization packets. Valid values must be in range [0, 63].
const DSCP = 63

const (
	TimeSourceNTP    = "ntp"
	TimeSourceSystem = "system"

	DefaultServers      = "pool.ntp.org,time.nist.gov"
	DefaultNTPTimeout   = "1s"
	DefaultSyncInterval = "1s"
)

var (
	errInvalidTimeSource = errors.New("invalid time source")
	errInvalidDSCP       = errors.New("invalid DSCP value")
	errInvalidDuration   = errors.New("invalid duration")
)

type Config struct {
	TimeSource     string  `toml:"time_source,omitempty"`
	GMTOffset      float64 `toml:"gmt_offset,omitempty"`
	DaylightOffset float64 `toml:"daylight_offset,omitempty"`
	NTPServers     string  `toml:"ntp_servers,omitempty"`
	LocalAddr      string  `toml:"local_address,omitempty"`
	DSCP           *uint8  `toml:"dscp,omitempty"`
	NTPTimeout     string  `toml:"ntp_timeout,omitempty"`
	SyncInterval   string  `toml:"sync_interval,omitempty"`
	MetricsAddr    string  `toml:"metrics_address,omitempty"`
}

// Default returns the configuration used for fields left unset.
func Default() Config {
	dscp := uint8(DSCP)
	return Config{
		TimeSource:   TimeSourceNTP,
		NTPServers:   DefaultServers,
		DSCP:         &dscp,
		NTPTimeout:   DefaultNTPTimeout,
		SyncInterval: DefaultSyncInterval,
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return Decode(raw)
}

// Decode decodes and validates a TOML configuration. Unknown fields are
// rejected.
func Decode(raw []byte) (Config, error) {
	cfg := Default()
	err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TimeSource != TimeSourceNTP && c.TimeSource != TimeSourceSystem {
		return fmt.Errorf("%w: %q", errInvalidTimeSource, c.TimeSource)
	}
	if c.DSCP != nil && *c.DSCP > udp.DSCPMax {
		return fmt.Errorf("%w: %d", errInvalidDSCP, *c.DSCP)
	}
	if _, err := parseDuration(c.NTPTimeout); err != nil {
		return fmt.Errorf("ntp_timeout: %w", err)
	}
	if _, err := parseDuration(c.SyncInterval); err != nil {
		return fmt.Errorf("sync_interval: %w", err)
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInvalidDuration, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidDuration, s)
	}
	return d, nil
}

func (c Config) DSCPValue() uint8 {
	if c.DSCP == nil {
		return DSCP
	}
	return *c.DSCP
}

// Timeout returns the per server NTP timeout of a validated configuration.
func (c Config) Timeout() time.Duration {
	d, _ := parseDuration(c.NTPTimeout)
	return d
}

// Interval returns the polling interval of a validated configuration.
func (c Config) Interval() time.Duration {
	d, _ := parseDuration(c.SyncInterval)
	return d
}
