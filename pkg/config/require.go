package config

import (
	"errors"
	"log"
	"net/url"
)

var errNotHTTP = errors.New("want an absolute http or https url")

// Must* helpers stop the process at startup when a required setting is
// missing. They run before the logger exists, so they use the std logger.

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustURL requires an absolute http(s) URL.
func MustURL(value, envName string) {
	MustNonEmpty(value, envName)
	if err := CheckURL(value); err != nil {
		log.Fatalf("invalid env %s: %v", envName, err)
	}
}

func CheckURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &url.Error{Op: "parse", URL: value, Err: errNotHTTP}
	}
	return nil
}
