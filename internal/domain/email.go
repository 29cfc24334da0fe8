package domain

// EmailMessage is a single outgoing HTML email. The sender identity belongs
// to the transport, not the message.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}
