package mongostore

import (
	"time"

	"github.com/jrsteele09/go-session-server/sessions"
)

// record is the stored document shape: the payload's keys live at the top
// level of the document next to the sid and ttl bookkeeping fields.
type record struct {
	SID     string           `bson:"sid"`
	TTL     time.Time        `bson:"ttl"`
	Payload sessions.Payload `bson:",inline"`
}

// newRecord clones the payload so the caller's copy is never mutated, then
// stamps the sid and the absolute expiry instant alongside it.
func newRecord(sid string, payload sessions.Payload, maxAge time.Duration, now time.Time) record {
	p := payload.Clone()
	// The bookkeeping fields own these keys in the stored document.
	delete(p, "_id")
	delete(p, "sid")
	delete(p, "ttl")

	return record{
		SID:     sid,
		TTL:     now.Add(sessions.MaxAge(payload, maxAge)),
		Payload: p,
	}
}

// payload returns the application-level state with bookkeeping stripped.
// The inline map swallows the document id on decode, so it is removed here.
func (r record) payload() sessions.Payload {
	p := r.Payload
	if p == nil {
		p = sessions.Payload{}
	}
	delete(p, "_id")
	delete(p, "sid")
	delete(p, "ttl")
	return p
}
