package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Location schemes understood by the storage layer
const (
	SchemeFile  = "file"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeAzure = "az"
)

// ErrInvalidLocation is wrapped by every location validation failure
var ErrInvalidLocation = errors.New("invalid location")

// Location is a parsed input or output location.
// For az:// locations Host is the container and Path the blob name.
type Location struct {
	Raw    string
	Scheme string
	Host   string
	Path   string
}

// IsRemote reports whether the location is served over the network
func (l Location) IsRemote() bool {
	return l.Scheme != SchemeFile
}

// LocationValidator handles location validation logic
type LocationValidator struct {
	allowedSchemes []string
}

// NewLocationValidator creates a location validator accepting every known scheme
func NewLocationValidator() *LocationValidator {
	return &LocationValidator{
		allowedSchemes: []string{SchemeFile, SchemeHTTP, SchemeHTTPS, SchemeAzure},
	}
}

// NewLocationValidatorWithSchemes creates a location validator with custom schemes
func NewLocationValidatorWithSchemes(schemes []string) *LocationValidator {
	return &LocationValidator{allowedSchemes: schemes}
}

// Validate parses raw and checks it against the allowed schemes.
// Strings without a "scheme://" prefix are treated as local paths.
func (v *LocationValidator) Validate(raw string) (Location, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Location{}, fmt.Errorf("%w: location cannot be empty", ErrInvalidLocation)
	}

	if !strings.Contains(trimmed, "://") {
		return v.checkScheme(Location{Raw: raw, Scheme: SchemeFile, Path: trimmed})
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	loc := Location{Raw: raw, Scheme: strings.ToLower(parsed.Scheme)}
	switch loc.Scheme {
	case SchemeFile:
		loc.Path = parsed.Path
		if loc.Path == "" {
			return Location{}, fmt.Errorf("%w: file location must have a path", ErrInvalidLocation)
		}
	case SchemeHTTP, SchemeHTTPS:
		if parsed.Host == "" {
			return Location{}, fmt.Errorf("%w: URL must have a valid host", ErrInvalidLocation)
		}
		loc.Host = parsed.Host
		loc.Path = parsed.Path
	case SchemeAzure:
		loc.Host = parsed.Host
		loc.Path = strings.TrimPrefix(parsed.Path, "/")
		if loc.Host == "" || loc.Path == "" {
			return Location{}, fmt.Errorf("%w: azure location must be az://container/blob", ErrInvalidLocation)
		}
	default:
		return Location{}, fmt.Errorf("%w: scheme %q not supported", ErrInvalidLocation, parsed.Scheme)
	}

	return v.checkScheme(loc)
}

func (v *LocationValidator) checkScheme(loc Location) (Location, error) {
	for _, allowed := range v.allowedSchemes {
		if loc.Scheme == allowed {
			return loc, nil
		}
	}
	return Location{}, fmt.Errorf("%w: scheme %q not allowed", ErrInvalidLocation, loc.Scheme)
}
