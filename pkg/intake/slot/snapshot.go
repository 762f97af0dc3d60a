package slot

// Snapshot is the serialisable state of an Engine.
type Snapshot struct {
	Log     map[string]any `json:"log"`
	Pending string         `json:"pending,omitempty"`
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Log:     e.Log(),
		Pending: e.pendingKey,
	}
}

// Restore replaces the engine state. A pending key that is already in the
// log or unknown to the schema is dropped.
func (e *Engine) Restore(s Snapshot) {
	e.log = make(map[string]any, len(s.Log))
	for k, v := range s.Log {
		e.log[k] = v
	}

	e.pendingKey = ""
	if s.Pending == "" {
		return
	}
	if _, filled := e.log[s.Pending]; filled {
		return
	}
	if _, known := e.schema.Field(s.Pending); known {
		e.pendingKey = s.Pending
	}
}
