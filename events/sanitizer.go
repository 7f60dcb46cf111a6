package events

import (
	"errors"
	"unicode/utf8"
)

const (
	SessionIDKey = "sessionId"
	TimestampKey = "timestamp"

	ConnectionKey = "connection"
	ScreenKey     = "screen"

	maxFieldLen     = 512
	maxEnumFieldLen = 32
	maxSessionIDLen = 255
)

//ErrSessionID is returned for a missing, non-string or overlong sessionId.
//sessionId is the join key for client-side session correlation and is the
//only body field subject to hard rejection.
var ErrSessionID = errors.New("sessionId must be a string of 255 chars or less")

//flatFields is the closed allow-list of scalar keys carried over from the
//client body. Keys outside this list are dropped unconditionally.
var flatFields = []string{
	"cpuCores", "deviceMemory", "doNotTrack", "hash", "isBot", "language",
	"pathname", "referrer", "search", SessionIDKey, "timeZone", TimestampKey,
	"title", "url", "userAgent", "visibility",
}

func ValidateSessionID(fact Fact) error {
	sessionID, ok := fact[SessionIDKey].(string)
	if !ok {
		return ErrSessionID
	}
	if utf8.RuneCountInString(sessionID) > maxSessionIDLen {
		return ErrSessionID
	}

	return nil
}

//Sanitize projects an untrusted fact onto the allow-list: a fresh object is
//built key by key, string values are truncated, wrong-typed nested values
//become nulls. Never fails and never ranges over the input keys.
func Sanitize(fact Fact) Fact {
	clean := Fact{}
	if fact == nil {
		return clean
	}

	if connection, ok := fact[ConnectionKey].(map[string]interface{}); ok {
		cleanConnection := map[string]interface{}{
			"downlink": numberOrNil(connection["downlink"]),
			"rtt":      numberOrNil(connection["rtt"]),
		}
		if v, ok := connection["effectiveType"]; ok {
			cleanConnection["effectiveType"] = truncated(v, maxEnumFieldLen)
		}
		clean[ConnectionKey] = cleanConnection
	}

	if screen, ok := fact[ScreenKey].(map[string]interface{}); ok {
		cleanScreen := map[string]interface{}{
			"height":     numberOrNil(screen["height"]),
			"pixelRatio": numberOrNil(screen["pixelRatio"]),
			"width":      numberOrNil(screen["width"]),
		}
		if v, ok := screen["orientation"]; ok {
			cleanScreen["orientation"] = truncated(v, maxEnumFieldLen)
		}
		clean[ScreenKey] = cleanScreen
	}

	for _, key := range flatFields {
		v, ok := fact[key]
		if !ok {
			continue
		}
		clean[key] = truncated(v, maxFieldLen)
	}

	return clean
}

func numberOrNil(v interface{}) interface{} {
	if number, ok := v.(float64); ok {
		return number
	}
	return nil
}

//truncated caps string values at maxLen chars, non-strings pass through unchanged
func truncated(v interface{}, maxLen int) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
