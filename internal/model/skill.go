package model

// Skill represents a row in the `skills` table. Skills are referenced by
// id only; offer creation and update validate that every referenced id
// exists before attaching.
type Skill struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
