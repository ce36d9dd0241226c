package ai

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hume signs webhooks with these headers.
const (
	HumeTimestampHeader = "X-Hume-AI-Webhook-Timestamp"
	HumeSignatureHeader = "X-Hume-AI-Webhook-Signature"
)

// VerifyHMAC verifies a sha256 HMAC hex signature against payload and secret
func VerifyHMAC(secret string, payload []byte, signatureHex string) bool {
	if secret == "" || signatureHex == "" {
		return false
	}
	expected := SignHMAC(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signatureHex))
}

// SignHMAC returns the lowercase hex sha256 HMAC of payload
func SignHMAC(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHumeWebhook checks a Hume webhook: the signature covers the raw body
// followed by the timestamp header value. Both headers are mandatory.
func VerifyHumeWebhook(secret string, body []byte, timestamp, signature string) bool {
	if timestamp == "" {
		return false
	}
	payload := make([]byte, 0, len(body)+len(timestamp))
	payload = append(payload, body...)
	payload = append(payload, timestamp...)
	return VerifyHMAC(secret, payload, signature)
}
