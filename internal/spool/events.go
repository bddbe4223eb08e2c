package spool

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the NATS subject prefix for job events.
const SubjectPrefix = "spoolsniff.job"

// Publisher sends job events. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// JobEvent is published once per processed job.
type JobEvent struct {
	Result
	ReceivedAt time.Time `json:"receivedAt"`
	AFP        string    `json:"afp"`
	SCS        string    `json:"scs"`
}

// EventSubject returns the subject for jobs of the given type, e.g.
// "spoolsniff.job.afp".
func EventSubject(dataType string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, strings.ToLower(dataType))
}

// ConnectNATS opens a NATS connection used as the spool Publisher.
func ConnectNATS(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("spoolsniff"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return nc, nil
}

func publishEvent(p Publisher, ev JobEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Publish(EventSubject(ev.Type.String()), data)
}
