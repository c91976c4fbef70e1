package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// VerifyWebhookSignature checks the authenticity of an inbound gateway
// callback. The signature must equal the hex-encoded HMAC-SHA256 of the
// canonical payload serialization under the shared secret. Any malformed
// input yields false; callers must treat false uniformly as "not authentic"
// without distinguishing cause.
func VerifyWebhookSignature(payload map[string]string, signature, secret string) bool {
	if len(payload) == 0 || signature == "" || secret == "" {
		return false
	}

	provided, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(CanonicalPayload(payload)))
	return hmac.Equal(mac.Sum(nil), provided)
}

// SignWebhookPayload produces the signature the gateway is expected to send.
// Exposed for tests and for the mock webhook tooling.
func SignWebhookPayload(payload map[string]string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(CanonicalPayload(payload)))
	return hex.EncodeToString(mac.Sum(nil))
}

// CanonicalPayload serializes payload fields as key=value pairs joined with
// ampersands, keys sorted ascending.
func CanonicalPayload(payload map[string]string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(payload[k])
	}
	return b.String()
}
