package entity

import "time"

// MailRequest is an outbox record for a transactional email. Unsent requests
// are retried by the mail worker until delivery succeeds.
type MailRequest struct {
	Id      int        `json:"id"`
	To      string     `json:"to" valid:"email,required"`
	ToName  string     `json:"toName,omitempty"`
	Subject string     `json:"subject" valid:"required"`
	Html    string     `json:"html" valid:"required"`
	Sent    bool       `json:"sent"`
	SentAt  *time.Time `json:"sentAt,omitempty"`
	ErrMsg  string     `json:"errMsg,omitempty"`
}
