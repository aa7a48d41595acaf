package formatter

import (
	"strings"
	"testing"

	"resumeforge/pkg/models"
)

func fullResume() models.ResumeData {
	return models.ResumeData{
		ContactInfo: models.ContactInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Portland, OR",
			Website:  "janedoe.dev",
		},
		Summary: "Senior engineer with 10 years of experience.",
		Experience: []models.ExperienceEntry{
			{Title: "Senior Engineer", Company: "Acme", Dates: "2019-2024", Description: "Led the platform team."},
			{Title: "Engineer", Company: "Initech", Dates: "2015-2019"},
		},
		Education: []models.EducationEntry{
			{Degree: "BS Computer Science", Institution: "State University", Dates: "2011-2015"},
		},
		Skills: []string{"Go", "Kubernetes", "PostgreSQL"},
		Projects: []models.ProjectEntry{
			{Name: "resumeforge", Description: "Resume analysis service", Technologies: "Go, Echo"},
		},
	}
}

func TestRenderResumeTextSectionOrder(t *testing.T) {
	text := RenderResumeText(fullResume())

	headings := []string{"Jane Doe", "PROFESSIONAL SUMMARY", "EXPERIENCE", "EDUCATION", "SKILLS", "PROJECTS"}
	last := -1
	for _, h := range headings {
		idx := strings.Index(text, h)
		if idx < 0 {
			t.Fatalf("missing section %q in:\n%s", h, text)
		}
		if idx < last {
			t.Errorf("section %q out of order", h)
		}
		last = idx
	}
}

func TestRenderResumeTextContactLine(t *testing.T) {
	text := RenderResumeText(fullResume())

	if !strings.Contains(text, "jane@example.com | 555-0100 | Portland, OR | janedoe.dev") {
		t.Errorf("contact details not pipe-joined:\n%s", text)
	}
	if !strings.Contains(text, "Senior Engineer | Acme | 2019-2024\nLed the platform team.") {
		t.Errorf("experience entry malformed:\n%s", text)
	}
	if !strings.Contains(text, "SKILLS\nGo, Kubernetes, PostgreSQL") {
		t.Errorf("skills not comma-joined:\n%s", text)
	}
	if !strings.Contains(text, "Technologies: Go, Echo") {
		t.Errorf("project technologies missing:\n%s", text)
	}
}

func TestRenderResumeTextOmitsEmptySections(t *testing.T) {
	data := models.ResumeData{
		ContactInfo: models.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Skills:      []string{"Go"},
	}

	text := RenderResumeText(data)

	for _, absent := range []string{"PROFESSIONAL SUMMARY", "EXPERIENCE", "EDUCATION", "PROJECTS"} {
		if strings.Contains(text, absent) {
			t.Errorf("empty section %q should be omitted:\n%s", absent, text)
		}
	}
	if !strings.Contains(text, "SKILLS\nGo") {
		t.Errorf("populated section missing:\n%s", text)
	}
}

func TestRenderResumeTextDeterministic(t *testing.T) {
	data := fullResume()
	first := RenderResumeText(data)
	for i := 0; i < 10; i++ {
		if got := RenderResumeText(data); got != first {
			t.Fatal("identical input produced different output")
		}
	}
	if !strings.HasSuffix(first, "\n") {
		t.Error("rendered resume should end with a trailing newline")
	}
}

func TestRenderResumeTextSkipsBlankFields(t *testing.T) {
	data := models.ResumeData{
		ContactInfo: models.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Experience: []models.ExperienceEntry{
			{Title: "Engineer", Company: "Acme"},
		},
	}

	text := RenderResumeText(data)

	if strings.Contains(text, "| |") || strings.Contains(text, " |\n") {
		t.Errorf("blank fields leaked separator artifacts:\n%s", text)
	}
	if !strings.Contains(text, "Engineer | Acme") {
		t.Errorf("present fields should still be joined:\n%s", text)
	}
}
