package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	name  string
	err   error
	sent  []string
	delay time.Duration
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(ctx context.Context, to, body string) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.sent = append(f.sent, to+"|"+body)
	return f.err
}

type recorder struct{ calls []string }

func (r *recorder) IncOutboundSend(provider, result string) {
	r.calls = append(r.calls, provider+":"+result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestDispatcher_Send(t *testing.T) {
	twilio := &fakeSender{name: "twilio"}
	meta := &fakeSender{name: "meta"}
	rec := &recorder{}
	d := New("twilio", time.Second, rec, nopLogger{}, twilio, meta)

	require.NoError(t, d.Send(context.Background(), "meta", "27682770367", "hi"))
	require.NoError(t, d.Send(context.Background(), "booking_form", "27682770367", "hello"))

	assert.Equal(t, []string{"27682770367|hi"}, meta.sent)
	assert.Equal(t, []string{"27682770367|hello"}, twilio.sent)
	assert.Equal(t, []string{"meta:ok", "twilio:ok"}, rec.calls)
}

func TestDispatcher_Send_Errors(t *testing.T) {
	failing := &fakeSender{name: "twilio", err: errors.New("boom")}
	rec := &recorder{}
	d := New("twilio", time.Second, rec, nopLogger{}, failing)

	assert.EqualError(t, d.Send(context.Background(), "twilio", "1", "x"), "boom")

	empty := New("", time.Second, rec, nopLogger{})
	assert.ErrorIs(t, empty.Send(context.Background(), "meta", "1", "x"), ErrNoSender)

	assert.Equal(t, []string{"twilio:error", "meta:no_sender"}, rec.calls)
}

func TestDispatcher_Send_Timeout(t *testing.T) {
	slow := &fakeSender{name: "meta", delay: time.Second}
	d := New("meta", 10*time.Millisecond, nil, nopLogger{}, slow)

	err := d.Send(context.Background(), "meta", "1", "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
