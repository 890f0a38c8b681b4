package models

// EntityID is the opaque identifier handed out for departments, faculties and
// publications. Callers must treat it as a stable string key; only the storage
// layer knows (and validates) the underlying uuid format.
type EntityID string

// RefList is an ordered list of entity references, stored as a jsonb array.
type RefList []EntityID

// Contains reports whether id is already in the list.
func (l RefList) Contains(id EntityID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Strings returns the references as plain strings, never nil.
func (l RefList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, v := range l {
		out = append(out, string(v))
	}
	return out
}
