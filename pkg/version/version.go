// Package version holds SDK version information and the API compatibility
// check driven by the X-API-Version response header.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// SDKVersion is the current SDK version.
	SDKVersion = "0.1.0"

	// MinAPIVersion is the oldest API version this SDK supports.
	MinAPIVersion = "1.0.0"

	// MaxKnownAPIVersion is the newest API version this SDK was built against.
	MaxKnownAPIVersion = "1.0.0"
)

// UnsupportedError is returned when the server's API version is older than
// the SDK supports.
type UnsupportedError struct {
	APIVersion      string
	MinVersion      string
	MaxKnownVersion string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported API version %s: this SDK requires >= %s",
		e.APIVersion, e.MinVersion)
}

// Parse splits a semver string into major, minor, patch and prerelease.
// Missing or malformed numeric components parse as 0.
func Parse(version string) (major, minor, patch int, prerelease string) {
	core := version
	if idx := strings.IndexByte(version, '-'); idx >= 0 {
		core = version[:idx]
		prerelease = version[idx+1:]
	}

	nums := strings.Split(core, ".")
	parse := func(i int) int {
		if i >= len(nums) {
			return 0
		}
		n, err := strconv.Atoi(nums[i])
		if err != nil {
			return 0
		}
		return n
	}

	return parse(0), parse(1), parse(2), prerelease
}

// Compare compares two semver versions, ignoring prerelease tags.
// Returns -1 when a < b, 0 when equal, 1 when a > b.
func Compare(a, b string) int {
	aMajor, aMinor, aPatch, _ := Parse(a)
	bMajor, bMinor, bPatch, _ := Parse(b)

	for _, pair := range [][2]int{{aMajor, bMajor}, {aMinor, bMinor}, {aPatch, bPatch}} {
		if pair[0] != pair[1] {
			if pair[0] < pair[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CheckCompatibility validates the server's API version against the range
// this SDK supports. Versions below MinAPIVersion fail; a major version
// above MaxKnownAPIVersion only logs a warning, since the server may still
// serve compatible responses.
func CheckCompatibility(apiVersion string) error {
	if Compare(apiVersion, MinAPIVersion) < 0 {
		return &UnsupportedError{
			APIVersion:      apiVersion,
			MinVersion:      MinAPIVersion,
			MaxKnownVersion: MaxKnownAPIVersion,
		}
	}

	apiMajor, _, _, _ := Parse(apiVersion)
	maxMajor, _, _, _ := Parse(MaxKnownAPIVersion)
	if apiMajor > maxMajor {
		log.Warn().
			Str("api_version", apiVersion).
			Str("sdk_version", SDKVersion).
			Str("max_known_version", MaxKnownAPIVersion).
			Msg("API version is newer than this SDK was built for; consider upgrading")
	}

	return nil
}

// BuildUserAgent returns the User-Agent header for SDK requests, identifying
// SDK name, version, OS and architecture, plus an optional caller suffix.
func BuildUserAgent(suffix string) string {
	ua := fmt.Sprintf("Refyne-SDK-Go/%s (%s; %s)", SDKVersion, runtime.GOOS, runtime.GOARCH)
	if suffix != "" {
		ua += " " + suffix
	}
	return ua
}
