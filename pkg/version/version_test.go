package version

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		version    string
		major      int
		minor      int
		patch      int
		prerelease string
	}{
		{"1.2.3", 1, 2, 3, ""},
		{"1.0.0-beta.1", 1, 0, 0, "beta.1"},
		{"2.5", 2, 5, 0, ""},
		{"3", 3, 0, 0, ""},
		{"", 0, 0, 0, ""},
		{"not.a.version", 0, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			major, minor, patch, prerelease := Parse(tt.version)
			if major != tt.major || minor != tt.minor || patch != tt.patch {
				t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
					tt.version, major, minor, patch, tt.major, tt.minor, tt.patch)
			}
			if prerelease != tt.prerelease {
				t.Errorf("prerelease = %q, want %q", prerelease, tt.prerelease)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"0.9.0", "1.0.0", -1},
		{"1.0.0-rc.1", "1.0.0", 0}, // prerelease ignored
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		apiVersion string
		wantErr    bool
	}{
		{"exact minimum", MinAPIVersion, false},
		{"newer patch", "1.0.5", false},
		{"newer major logs but passes", "2.0.0", false},
		{"below minimum", "0.9.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.apiVersion)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCompatibility(%q) error = %v, wantErr %v", tt.apiVersion, err, tt.wantErr)
			}
			if tt.wantErr {
				var unsupported *UnsupportedError
				if !errors.As(err, &unsupported) {
					t.Fatalf("error = %T, want *UnsupportedError", err)
				}
				if unsupported.APIVersion != tt.apiVersion {
					t.Errorf("APIVersion = %q, want %q", unsupported.APIVersion, tt.apiVersion)
				}
			}
		})
	}
}

func TestBuildUserAgent(t *testing.T) {
	ua := BuildUserAgent("")
	if !strings.HasPrefix(ua, "Refyne-SDK-Go/"+SDKVersion) {
		t.Errorf("BuildUserAgent() = %q, want SDK prefix", ua)
	}

	withSuffix := BuildUserAgent("my-app/1.0")
	if !strings.HasSuffix(withSuffix, " my-app/1.0") {
		t.Errorf("BuildUserAgent() = %q, want suffix appended", withSuffix)
	}
}
