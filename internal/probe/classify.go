package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strings"
	"syscall"
)

// classifyErr maps a transport error onto the Reason* taxonomy. Typed checks
// come first; substring matching on the error text is the last resort for
// errors that arrive pre-flattened (wrapped third-party errors, tool output).
func classifyErr(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return ReasonConnTimeout
		}
		return ReasonDNSFailure
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonConnRefused
	}
	if errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return ReasonUnreachable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonConnTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonConnTimeout
	}

	if isTLSErr(err) {
		return ReasonTLS
	}

	return classifyText(err.Error())
}

func isTLSErr(err error) bool {
	var (
		record    tls.RecordHeaderError
		certVerif *tls.CertificateVerificationError
		hostname  x509.HostnameError
		authority x509.UnknownAuthorityError
		invalid   x509.CertificateInvalidError
	)
	return errors.As(err, &record) ||
		errors.As(err, &certVerif) ||
		errors.As(err, &hostname) ||
		errors.As(err, &authority) ||
		errors.As(err, &invalid)
}

// classifyText is the fallback for error strings we cannot inspect as types.
// Locale- and platform-fragile; only reached when the typed checks miss.
func classifyText(s string) string {
	ls := strings.ToLower(s)
	switch {
	case strings.Contains(ls, "no such host"),
		strings.Contains(ls, "name or service not known"),
		strings.Contains(ls, "name resolution"):
		return ReasonDNSFailure
	case strings.Contains(ls, "connection refused"):
		return ReasonConnRefused
	case strings.Contains(ls, "network is unreachable"),
		strings.Contains(ls, "host is unreachable"):
		return ReasonUnreachable
	case strings.Contains(ls, "timeout"),
		strings.Contains(ls, "timed out"),
		strings.Contains(ls, "deadline exceeded"):
		return ReasonConnTimeout
	case strings.Contains(ls, "tls"),
		strings.Contains(ls, "ssl"),
		strings.Contains(ls, "certificate"):
		return ReasonTLS
	default:
		return ReasonProbeFailed
	}
}
