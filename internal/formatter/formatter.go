package formatter

import (
	"strings"

	"resumeforge/pkg/models"
)

// RenderResumeText deterministically renders a plain-text resume from
// structured input data. Section ordering is fixed (contact, summary,
// experience, education, skills, projects) and a section is omitted entirely
// when its source data is empty. Used when the completion service is
// unavailable so resume generation always returns a usable document.
func RenderResumeText(data models.ResumeData) string {
	var sections []string

	sections = append(sections, renderContact(data.ContactInfo))

	if strings.TrimSpace(data.Summary) != "" {
		sections = append(sections, "PROFESSIONAL SUMMARY\n"+strings.TrimSpace(data.Summary))
	}

	if len(data.Experience) > 0 {
		sections = append(sections, renderExperience(data.Experience))
	}

	if len(data.Education) > 0 {
		sections = append(sections, renderEducation(data.Education))
	}

	if len(data.Skills) > 0 {
		sections = append(sections, "SKILLS\n"+strings.Join(data.Skills, ", "))
	}

	if len(data.Projects) > 0 {
		sections = append(sections, renderProjects(data.Projects))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func renderContact(c models.ContactInfo) string {
	var lines []string
	lines = append(lines, c.Name)

	var details []string
	for _, d := range []string{c.Email, c.Phone, c.Location, c.Website} {
		if d != "" {
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		lines = append(lines, strings.Join(details, " | "))
	}

	return strings.Join(lines, "\n")
}

func renderExperience(entries []models.ExperienceEntry) string {
	var b strings.Builder
	b.WriteString("EXPERIENCE")
	for _, e := range entries {
		b.WriteString("\n\n")

		// Fixed field order: title, company, dates, description
		var head []string
		for _, f := range []string{e.Title, e.Company, e.Dates} {
			if f != "" {
				head = append(head, f)
			}
		}
		b.WriteString(strings.Join(head, " | "))

		if e.Description != "" {
			b.WriteString("\n" + e.Description)
		}
	}
	return b.String()
}

func renderEducation(entries []models.EducationEntry) string {
	var b strings.Builder
	b.WriteString("EDUCATION")
	for _, e := range entries {
		b.WriteString("\n\n")

		var head []string
		for _, f := range []string{e.Degree, e.Institution, e.Dates} {
			if f != "" {
				head = append(head, f)
			}
		}
		b.WriteString(strings.Join(head, " | "))
	}
	return b.String()
}

func renderProjects(entries []models.ProjectEntry) string {
	var b strings.Builder
	b.WriteString("PROJECTS")
	for _, p := range entries {
		b.WriteString("\n\n")
		b.WriteString(p.Name)
		if p.Description != "" {
			b.WriteString("\n" + p.Description)
		}
		if p.Technologies != "" {
			b.WriteString("\nTechnologies: " + p.Technologies)
		}
	}
	return b.String()
}
