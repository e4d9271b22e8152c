package usernamer

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/regkit/usernamer/model"
)

// allowedChars marks the characters a derived localpart may contain: ASCII
// lowercase letters, digits, and "_-./=". Everything else is dropped during
// normalization.
var allowedChars = func() [128]bool {
	var t [128]bool
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for _, c := range "_-./=" {
		t[c] = true
	}
	return t
}()

// conflictPolicy describes how a taken candidate is rewritten for one
// identifier kind.
type conflictPolicy struct {
	// pattern splits a candidate into prefix and trailing suffix number.
	pattern *regexp.Regexp
	// separator is inserted before the first appended suffix when the
	// candidate has no suffix yet.
	separator string
}

var conflictPolicies = map[model.IdentifierKind]conflictPolicy{
	// An email-derived candidate may legitimately end in digits, so the
	// first collision appends a bare "1" and later collisions increment it.
	model.KindEmail: {
		pattern:   regexp.MustCompile(`^(.*?)(\d+)$`),
		separator: "",
	},
	// A phone number is all digits; the "-" separator keeps an appended
	// suffix distinguishable from the number itself.
	model.KindMSISDN: {
		pattern:   regexp.MustCompile(`^(.*?-)(\d+)$`),
		separator: "-",
	},
}

// normalizeEmail turns an email address into a base candidate: "@" replaced
// with "-", lowercased, disallowed characters dropped.
func normalizeEmail(address string) string {
	lowered := strings.ToLower(strings.ReplaceAll(address, "@", "-"))

	out := make([]byte, 0, len(lowered))
	for _, r := range lowered {
		if r < 128 && allowedChars[r] {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// nextCandidate rewrites a taken candidate: if it already carries a suffix
// matching the policy pattern, the trailing number is incremented by one;
// otherwise separator+"1" is appended.
func nextCandidate(candidate string, policy conflictPolicy) string {
	if m := policy.pattern.FindStringSubmatch(candidate); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			return m[1] + strconv.Itoa(n+1)
		}
	}
	return candidate + policy.separator + "1"
}

// resolveUnique probes the oracle with the candidate, rewriting it on every
// "username in use" answer until the oracle accepts one. Any other oracle
// error is returned unchanged and stops the probing. The loop is unbounded;
// termination relies on the oracle's set of taken names being finite.
func resolveUnique(ctx context.Context, oracle model.Oracle, candidate string, policy conflictPolicy) (string, error) {
	for {
		err := oracle.CheckUsername(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, model.ErrUsernameInUse) {
			return "", err
		}
		candidate = nextCandidate(candidate, policy)
	}
}
