package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signPayload(payload []byte, secret string, ts time.Time) string {
	signed := fmt.Sprintf("%d.%s", ts.Unix(), payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyEventAcceptsValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{"id":"in_1"}}}`)
	secret := "whsec_test"

	header := signPayload(payload, secret, time.Now())
	ev, err := VerifyEvent(payload, header, secret)
	if err != nil {
		t.Fatalf("expected signature to verify: %v", err)
	}
	if string(ev.Type) != "invoice.payment_succeeded" {
		t.Fatalf("unexpected event type %q", ev.Type)
	}
}

func TestVerifyEventRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{}}}`)

	header := signPayload(payload, "whsec_other", time.Now())
	if _, err := VerifyEvent(payload, header, "whsec_test"); err == nil {
		t.Fatal("expected verification failure for wrong secret")
	}
}

func TestVerifyEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{}}}`)
	secret := "whsec_test"

	header := signPayload(payload, secret, time.Now())
	tampered := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{}}}`)
	if _, err := VerifyEvent(tampered, header, secret); err == nil {
		t.Fatal("expected verification failure for tampered payload")
	}
}

func TestVerifyEventRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.payment_failed","data":{"object":{}}}`)
	secret := "whsec_test"

	header := signPayload(payload, secret, time.Now().Add(-time.Hour))
	if _, err := VerifyEvent(payload, header, secret); err == nil {
		t.Fatal("expected verification failure for stale timestamp")
	}
}

func TestVerifyEventRejectsGarbageHeader(t *testing.T) {
	payload := []byte(`{}`)
	if _, err := VerifyEvent(payload, "deadbeef", "whsec_test"); err == nil {
		t.Fatal("expected verification failure for malformed header")
	}
}
