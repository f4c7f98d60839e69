package mailer

import "context"

// Message is one outbound email. HTML is the primary body; Text is the
// plain-text alternative.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
	CC      []string
	BCC     []string
}

// Transport delivers a message over a concrete channel (Mailgun HTTP API
// or SMTP). Implementations report whether credentials were supplied at
// construction; an unconfigured transport is never asked to send.
type Transport interface {
	Configured() bool
	Send(ctx context.Context, msg Message) error
}

func (m Message) recipients() []string {
	out := []string{m.To}
	out = append(out, m.CC...)
	out = append(out, m.BCC...)
	return out
}
