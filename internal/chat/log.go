package chat

// Log is the append-only ordered record of exchanged messages. Insertion
// order is chronological; there is no mutation or deletion operation. It is
// cleared only by the owning session when a new dataset replaces the old one.
type Log struct {
	messages []Message
}

// Append adds a message at the end.
func (l *Log) Append(m Message) {
	l.messages = append(l.messages, m)
}

// All returns the messages oldest-first as a copy; callers cannot mutate
// the log through it.
func (l *Log) All() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len reports the number of messages.
func (l *Log) Len() int { return len(l.messages) }

func (l *Log) reset() { l.messages = nil }
