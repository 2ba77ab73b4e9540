// Package ack composes the reply sent back to a customer after a booking request.
package ack

import (
	"strings"
)

const (
	genericServiceLabel = "your selected service"
	genericGreeting     = "Hi there!"
	replyInstructions   = "Reply 1 to Confirm, 2 to Change, 3 to Cancel."
)

// Input fields for BuildAckMessage. Empty strings are treated as absent.
type Input struct {
	Name        string
	ServiceName string
	DateTime    string
	BarberName  string
	Ref         string
	QueueNumber string
}

// BuildAckMessage builds the acknowledgement text. Optional lines are omitted,
// never emitted with a blank value.
func BuildAckMessage(in Input) string {
	service := strings.TrimSpace(in.ServiceName)
	if service == "" {
		service = genericServiceLabel
	}

	greeting := genericGreeting
	if name := strings.TrimSpace(in.Name); name != "" {
		greeting = "Hi " + name + "!"
	}

	lines := []string{greeting + " We received your booking request for " + service + "."}
	lines = appendLine(lines, "When: ", in.DateTime)
	lines = appendLine(lines, "Barber: ", in.BarberName)
	lines = appendLine(lines, "Booking ref: ", in.Ref)
	lines = appendLine(lines, "Queue number: ", in.QueueNumber)
	lines = append(lines, replyInstructions)

	return strings.Join(lines, "\n")
}

func appendLine(lines []string, label, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return lines
	}
	return append(lines, label+value)
}

// Replies to 1/2/3 and to problems with them
const (
	MsgConfirmed      = "Thanks! Your booking %s is confirmed."
	MsgCancelled      = "Your booking %s has been cancelled."
	MsgChangeRequest  = "No problem. Send the new details for booking %s, for example:\nService: Haircut\nDate: 2026-01-10 15:00\nBarber: John"
	MsgNoOpenBooking  = "We could not find an open booking for this number. Send the service, your name and a time to book."
	MsgCannotConfirm  = "Booking %s can no longer be confirmed (status: %s)."
	MsgCannotCancel   = "Booking %s can no longer be cancelled (status: %s)."
	MsgTemporaryError = "Sorry, something went wrong on our side. Please try again in a few minutes."
)
