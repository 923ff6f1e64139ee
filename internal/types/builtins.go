package types

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Built-in type names.
const (
	TypeBoolean     = "boolean"
	TypeDatabaseURL = "database_url"
	TypeLocalhost   = "localhost"
	TypeURL         = "url"
	TypeNumber      = "number"
	TypeJSON        = "json"
	TypeIPv4        = "ipv4"
	TypeISODate     = "iso_date"
	TypeISOTime     = "iso_time"
	TypeHexColor    = "hex_color"
	TypeString      = "string"
)

// BuiltinOrder is the canonical evaluation order. database_url runs
// before the generic url pattern so a connection string is not
// swallowed by url's broad grammar, and boolean runs first so its
// literal tokens (1, 0) are not claimed by number.
var BuiltinOrder = []string{
	TypeBoolean,
	TypeDatabaseURL,
	TypeLocalhost,
	TypeURL,
	TypeNumber,
	TypeJSON,
	TypeIPv4,
	TypeISODate,
	TypeISOTime,
	TypeHexColor,
}

var (
	booleanPattern  = regexp.MustCompile(`^(?i)(true|false|yes|no|1|0)$`)
	numberPattern   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	jsonPattern     = regexp.MustCompile(`^(?s)\s*(\{.*\}|\[.*\])\s*$`)
	ipv4Pattern     = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	isoDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoTimePattern  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	localhostPattern = regexp.MustCompile(`^(?i)https?://(localhost|127\.0\.0\.1)(:\d{1,5})?(/\S*)?$`)
	localhostPort    = regexp.MustCompile(`^(?i)https?://(?:localhost|127\.0\.0\.1):(\d+)`)

	// scheme://host[:port][/path][?query][#fragment]
	urlPattern = regexp.MustCompile(`^(?i)([a-z][a-z0-9+.-]*)://([^/:?#\s]*)(?::(\d+))?([^?#\s]*)(?:\?([^#\s]*))?(?:#(\S*))?$`)

	// scheme://[user[:pass]@]host[:port][/path][?query]
	databaseURLPattern = regexp.MustCompile(`^(?i)([a-z][a-z0-9+]*)://(?:([^:@/?\s]+)(?::([^@/?\s]*))?@)?([^:/?\s]*)(?::(\d+))?(/[^?\s]*)?(?:\?(\S*))?$`)
)

var urlSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "sftp": true,
	"ws": true, "wss": true, "git": true, "ssh": true, "file": true,
}

var databaseSchemes = map[string]bool{
	"postgresql": true, "postgres": true, "mysql": true,
	"mongodb": true, "mongodb+srv": true, "redis": true, "rediss": true,
	"sqlite": true, "mariadb": true, "cockroachdb": true,
}

// pathChars covers unreserved, sub-delims, and percent escapes as they
// appear in URL path/query/fragment components.
var pathChars = regexp.MustCompile(`^[A-Za-z0-9._~!$&'()*+,;=:@/%?#-]*$`)

// Builtins returns fresh definitions for every built-in type, keyed by
// name. Evaluation order is BuiltinOrder, not map order.
func Builtins() map[string]TypeDefinition {
	defs := map[string]TypeDefinition{
		TypeBoolean: {
			Name:      TypeBoolean,
			Pattern:   booleanPattern,
			Transform: TransformerFunc(NormalizeBoolean),
		},
		TypeDatabaseURL: {
			Name:     TypeDatabaseURL,
			Pattern:  databaseURLPattern,
			Validate: ValidatorFunc(validDatabaseURL),
		},
		TypeLocalhost: {
			Name:     TypeLocalhost,
			Pattern:  localhostPattern,
			Validate: ValidatorFunc(validLocalhost),
		},
		TypeURL: {
			Name:     TypeURL,
			Pattern:  urlPattern,
			Validate: ValidatorFunc(validURL),
		},
		TypeNumber: {
			Name:    TypeNumber,
			Pattern: numberPattern,
		},
		TypeJSON: {
			Name:    TypeJSON,
			Pattern: jsonPattern,
			Validate: ValidatorFunc(func(v string) bool {
				return json.Valid([]byte(strings.TrimSpace(v)))
			}),
		},
		TypeIPv4: {
			Name:     TypeIPv4,
			Pattern:  ipv4Pattern,
			Validate: ValidatorFunc(validIPv4),
		},
		TypeISODate: {
			Name:     TypeISODate,
			Pattern:  isoDatePattern,
			Validate: ValidatorFunc(validISODate),
		},
		TypeISOTime: {
			Name:     TypeISOTime,
			Pattern:  isoTimePattern,
			Validate: ValidatorFunc(validISOTime),
		},
		TypeHexColor: {
			Name:      TypeHexColor,
			Pattern:   hexColorPattern,
			Transform: TransformerFunc(expandHexColor),
		},
	}
	return defs
}

// NormalizeBoolean maps any boolean literal to the canonical lower-case
// form: true, yes and 1 become "true", the rest of the set "false".
func NormalizeBoolean(value string) string {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return "true"
	default:
		return "false"
	}
}

// IsBooleanLiteral reports whether the value is in the boolean token
// set, case-insensitively.
func IsBooleanLiteral(value string) bool {
	return booleanPattern.MatchString(value)
}

// IsNumber reports whether the value is a bare integer or decimal.
func IsNumber(value string) bool {
	return numberPattern.MatchString(value)
}

func validIPv4(value string) bool {
	for _, octet := range strings.Split(value, ".") {
		n, err := strconv.Atoi(octet)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

func validPort(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 65535
}

func validHost(host string) bool {
	if host == "" {
		return false
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") || strings.Contains(host, "..") {
		return false
	}
	if strings.Contains(host, ".") {
		return true
	}
	return ipv4Pattern.MatchString(host) && validIPv4(host)
}

func validURL(value string) bool {
	m := urlPattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	scheme, host, port, path, query, fragment := strings.ToLower(m[1]), m[2], m[3], m[4], m[5], m[6]
	if !urlSchemes[scheme] {
		return false
	}
	if !validHost(host) {
		return false
	}
	if port != "" && !validPort(port) {
		return false
	}
	return pathChars.MatchString(path) && pathChars.MatchString(query) && pathChars.MatchString(fragment)
}

func validLocalhost(value string) bool {
	if m := localhostPort.FindStringSubmatch(value); m != nil {
		return validPort(m[1])
	}
	return true
}

func validDatabaseURL(value string) bool {
	m := databaseURLPattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	scheme, host, port, path := strings.ToLower(m[1]), m[4], m[5], m[6]
	if !databaseSchemes[scheme] {
		return false
	}
	if port != "" && !validPort(port) {
		return false
	}
	switch scheme {
	case "sqlite":
		// sqlite carries its file in the path; bare or root paths
		// name no database.
		return path != "" && path != "/"
	case "mongodb+srv":
		// SRV discovery resolves ports from DNS, so an explicit port
		// is malformed, and the host must be a dotted domain.
		return port == "" && strings.Contains(host, ".")
	default:
		return host != ""
	}
}

func validISODate(value string) bool {
	year, _ := strconv.Atoi(value[0:4])
	month, _ := strconv.Atoi(value[5:7])
	day, _ := strconv.Atoi(value[8:10])
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	days := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	max := days[month-1]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	return day <= max
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func validISOTime(value string) bool {
	hour, _ := strconv.Atoi(value[0:2])
	minute, _ := strconv.Atoi(value[3:5])
	second, _ := strconv.Atoi(value[6:8])
	return hour < 24 && minute < 60 && second < 60
}

// expandHexColor doubles each digit of the 3-digit shorthand so
// consumers always see the 6-digit form.
func expandHexColor(value string) string {
	if len(value) != 4 {
		return value
	}
	var b strings.Builder
	b.WriteByte('#')
	for i := 1; i < 4; i++ {
		b.WriteByte(value[i])
		b.WriteByte(value[i])
	}
	expanded := b.String()
	if !hexColorPattern.MatchString(expanded) {
		return value
	}
	return expanded
}
