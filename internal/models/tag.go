package models

// Tag is a named category. Tags are owned once by the manager's tag table
// and referenced by id from any number of notes.
type Tag struct {
	ID   int
	Name string
}
