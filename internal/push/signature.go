package push

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader - заголовок с подписью обратного вызова о доставке
const SignatureHeader = "X-Webhook-Signature"

// Sign генерирует HMAC-SHA256 подпись для данных
func Sign(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature сравнивает подпись за постоянное время
func VerifySignature(data []byte, signature, secret string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hmac.Equal(h.Sum(nil), expected)
}
