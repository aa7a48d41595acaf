package models

// ContactInfo carries the contact block of a resume. Name and email are the
// minimum required to generate anything useful.
type ContactInfo struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
}

// ExperienceEntry represents a single work experience item. Field order in
// rendered output is fixed: title, company, dates, description.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry represents a single education item.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Dates       string `json:"dates,omitempty"`
}

// ProjectEntry represents a single project item.
type ProjectEntry struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
}

// ResumeData is the structured resume input accepted by the generation
// endpoint and, as an alternative to a document upload, by the analysis
// endpoint.
type ResumeData struct {
	ContactInfo ContactInfo       `json:"contactInfo" validate:"required"`
	Summary     string            `json:"summary,omitempty"`
	Experience  []ExperienceEntry `json:"experience,omitempty" validate:"dive"`
	Education   []EducationEntry  `json:"education,omitempty" validate:"dive"`
	Skills      []string          `json:"skills,omitempty"`
	Projects    []ProjectEntry    `json:"projects,omitempty" validate:"dive"`
}
