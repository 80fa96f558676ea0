package domain

import (
	"encoding/json"
	"time"
)

type Project struct {
	ID         int64           `json:"id"`
	Ref        string          `json:"ref"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	CreatedBy  int64           `json:"created_by"`
	Definition json.RawMessage `json:"definition,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ProjectDefinition is the subset of an exported project file read on import.
type ProjectDefinition struct {
	Project struct {
		Name       string `json:"name"`
		SmallDesc  string `json:"small_description"`
		Visibility string `json:"visibility"`
	} `json:"project"`
}

// ImportProjectRequest is the body of the project import endpoint.
// Name, when set, overrides the name inside the definition.
type ImportProjectRequest struct {
	Name       string          `json:"name" validate:"omitempty,ec5_project_name,ec5_slug_free"`
	Definition json.RawMessage `json:"definition" validate:"required"`
}
