package twilio

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// SignatureHeader заголовок с подписью запроса
const SignatureHeader = "X-Twilio-Signature"

// ValidateSignature проверяет X-Twilio-Signature: base64(HMAC-SHA1(url + отсортированные key+value)).
// Форма должна быть уже разобрана (r.ParseForm).
func ValidateSignature(r *http.Request, authToken, webhookURL string) bool {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		return false
	}
	expected := ComputeSignature(authToken, webhookURL, r.PostForm)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// ComputeSignature считает подпись так же, как Twilio
func ComputeSignature(authToken, webhookURL string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var payload strings.Builder
	payload.WriteString(webhookURL)
	for _, k := range keys {
		for _, v := range params[k] {
			payload.WriteString(k)
			payload.WriteString(v)
		}
	}

	h := hmac.New(sha1.New, []byte(authToken))
	h.Write([]byte(payload.String()))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ParseInbound читает поля входящего сообщения из разобранной формы
func ParseInbound(form url.Values) InboundMessage {
	return InboundMessage{
		MessageSID:  form.Get("MessageSid"),
		AccountSID:  form.Get("AccountSid"),
		From:        form.Get("From"),
		To:          form.Get("To"),
		Body:        form.Get("Body"),
		ProfileName: form.Get("ProfileName"),
	}
}
