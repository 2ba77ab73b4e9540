package metawa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// SignatureHeader заголовок с подписью тела запроса
const SignatureHeader = "X-Hub-Signature-256"

// VerifySignature проверяет "sha256=<hex HMAC-SHA256(body, appSecret)>"
func VerifySignature(appSecret string, body []byte, signature string) bool {
	hexSig, ok := strings.CutPrefix(signature, "sha256=")
	if !ok || hexSig == "" {
		return false
	}
	got, err := hex.DecodeString(hexSig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// Sign считает подпись тела так же, как Meta (для тестов и локальной отладки)
func Sign(appSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifyChallenge проверяет GET-запрос подписки вебхука
func VerifyChallenge(mode, token, verifyToken string) bool {
	return mode == "subscribe" && verifyToken != "" && hmac.Equal([]byte(token), []byte(verifyToken))
}

// ParseWebhook разбирает тело вебхука и возвращает текстовые сообщения.
// Статусы доставки и нетекстовые сообщения пропускаются.
func ParseWebhook(body []byte) ([]InboundMessage, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var messages []InboundMessage
	for _, entry := range event.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string, len(change.Value.Contacts))
			for _, c := range change.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}

			for _, m := range change.Value.Messages {
				text := ""
				switch {
				case m.Text != nil:
					text = m.Text.Body
				case m.Button != nil:
					text = m.Button.Text
				}
				if m.From == "" || strings.TrimSpace(text) == "" {
					continue
				}
				messages = append(messages, InboundMessage{
					MessageID:   m.ID,
					From:        m.From,
					Body:        text,
					ProfileName: names[m.From],
				})
			}
		}
	}
	return messages, nil
}
