package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyHumeWebhook(t *testing.T) {
	body := []byte(`{"event_name":"chat_started","chat_id":"c1"}`)
	ts := "1700000000"
	sig := SignHMAC("topsecret", append(append([]byte{}, body...), ts...))

	assert.True(t, VerifyHumeWebhook("topsecret", body, ts, sig))

	cases := map[string]struct {
		secret, ts, sig string
		body            []byte
	}{
		"wrong secret":      {"other", ts, sig, body},
		"tampered body":     {"topsecret", ts, sig, []byte(`{"event_name":"chat_ended"}`)},
		"shifted timestamp": {"topsecret", "1700000001", sig, body},
		"missing timestamp": {"topsecret", "", sig, body},
		"missing signature": {"topsecret", ts, "", body},
		"empty secret":      {"", ts, sig, body},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, VerifyHumeWebhook(tc.secret, tc.body, tc.ts, tc.sig))
		})
	}
}
