package db

import (
	"net/url"
	"os"
	"strings"
)

// NormalizeDSN cleans a raw connection string. URL forms (postgres:// or
// postgresql://) pass through untouched; lib/pq key=value lists are trimmed
// of quotes, whitespace-collapsed, and given sslmode=disable when none is
// set. Anything else is returned as-is for the driver to reject.
func NormalizeDSN(raw string) string {
	s := strings.Trim(strings.TrimSpace(raw), "\"'")
	if s == "" || isURLForm(s) || !strings.Contains(s, "=") {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

func isURLForm(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// ToURLDSN converts a key=value DSN to URL form, which golang-migrate
// requires. Inputs already in URL form, or missing host/user/dbname, come
// back unchanged.
func ToURLDSN(kvDSN string) string {
	if kvDSN == "" || isURLForm(kvDSN) {
		return kvDSN
	}
	kv := map[string]string{}
	for _, f := range strings.Fields(kvDSN) {
		if k, v, ok := strings.Cut(f, "="); ok {
			kv[strings.ToLower(k)] = v
		}
	}
	if kv["host"] == "" || kv["user"] == "" || kv["dbname"] == "" {
		return kvDSN
	}
	u := &url.URL{Scheme: "postgres", Host: kv["host"], Path: "/" + kv["dbname"]}
	if kv["port"] != "" {
		u.Host += ":" + kv["port"]
	}
	if kv["password"] != "" {
		u.User = url.UserPassword(kv["user"], kv["password"])
	} else {
		u.User = url.User(kv["user"])
	}
	if kv["sslmode"] != "" {
		q := url.Values{}
		q.Set("sslmode", kv["sslmode"])
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// GetNormalizedDSN resolves the connection string from DATABASE_URL,
// falling back to POSTGRES_URI, and normalizes it.
func GetNormalizedDSN() string {
	raw := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(raw) == "" {
		raw = os.Getenv("POSTGRES_URI")
	}
	return NormalizeDSN(raw)
}
