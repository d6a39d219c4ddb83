package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the signature the gateway attaches to a successful payment:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is exactly the lowercase hex Sign
// produces for the same inputs. Any other spelling, upper case included,
// is rejected so the stored evidence is always canonical.
func Verify(secret, orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(Sign(secret, orderID, paymentID)), []byte(signature))
}

// Verifier binds the shared secret so callers never handle it directly.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: secret}
}

func (v Verifier) Verify(orderID, paymentID, signature string) bool {
	return Verify(v.secret, orderID, paymentID, signature)
}
