package fitio

// Field is one (name, value) entry of a decoded Message.
type Field struct {
	Name  string
	Value any
}

// Message is the ordered sequence of (field-name, value) entries the
// decoder produces for one data record. It behaves as an association list
// rather than a map: lookups resolve to the first matching entry, which is
// the semantics a developer field relies on when it happens to share a
// name with a native field defined earlier in the same record.
type Message struct {
	GlobalID   uint16
	GlobalName string
	LocalID    uint8
	Fields     []Field
}

// Get returns the value of the first field named name.
func (m *Message) Get(name string) (any, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Append adds a field to the end of the list.
func (m *Message) Append(name string, value any) {
	m.Fields = append(m.Fields, Field{Name: name, Value: value})
}

// Prepend inserts fields at the front of the list, in the given order.
func (m *Message) Prepend(fields ...Field) {
	m.Fields = append(append([]Field{}, fields...), m.Fields...)
}

// RemoveName drops every field named name.
func (m *Message) RemoveName(name string) {
	out := m.Fields[:0]
	for _, f := range m.Fields {
		if f.Name != name {
			out = append(out, f)
		}
	}
	m.Fields = out
}

// Clone returns a deep-enough copy of m for builders that need to merge or
// mutate a message without aliasing the decoder's backing slice.
func (m *Message) Clone() *Message {
	clone := &Message{GlobalID: m.GlobalID, GlobalName: m.GlobalName, LocalID: m.LocalID}
	clone.Fields = append([]Field{}, m.Fields...)
	return clone
}
