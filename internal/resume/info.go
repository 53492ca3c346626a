package resume

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/job-radar/internal/skills"
)

const summaryLimit = 500

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ExtractedInfo holds the structured signals read from resume text.
type ExtractedInfo struct {
	Skills          []string `json:"skills"`
	Contact         Contact  `json:"contact"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
	Education       []string `json:"education"`
	Summary         string   `json:"summary"`
}

var (
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// Ten digit numbers with an optional country code. Runs of years such as
	// "2019 2020" do not fit.
	phonePattern      = regexp.MustCompile(`(?:\+\d{1,3}[-\s.]?)?\(?\d{3}\)?[-\s.]?\d{3}[-\s.]?\d{4}`)
	linkedInPattern   = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9\-_]+`)
	experiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\b`)

	degrees = []struct {
		tag     string
		pattern *regexp.Regexp
	}{
		{tag: "Bachelor", pattern: regexp.MustCompile(`(?i)(?:^|\W)(?:Bachelor(?:'?s)?|B\.?S\.?|B\.?A\.?|B\.?Tech|BSc)(?:\W|$)`)},
		{tag: "Master", pattern: regexp.MustCompile(`(?i)(?:^|\W)(?:Master(?:'?s)?|M\.?S\.?|M\.?A\.?|M\.?Tech|MSc)(?:\W|$)`)},
		{tag: "PhD", pattern: regexp.MustCompile(`(?i)(?:^|\W)(?:PhD|Ph\.D\.?|Doctorate)(?:\W|$)`)},
	}
)

// ExtractResumeInfo reads contact details, skills, experience, degrees and a
// short summary from resume text.
func ExtractResumeInfo(text string) ExtractedInfo {
	collapsed := strings.Join(strings.Fields(text), " ")

	info := ExtractedInfo{
		Skills:    skills.Extract(collapsed),
		Education: []string{},
		Contact: Contact{
			Email:    emailPattern.FindString(collapsed),
			Phone:    phonePattern.FindString(collapsed),
			LinkedIn: linkedInPattern.FindString(collapsed),
		},
		Summary: summarize(collapsed),
	}

	if m := experiencePattern.FindStringSubmatch(collapsed); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			info.ExperienceYears = years
		}
	}

	for _, d := range degrees {
		if d.pattern.MatchString(collapsed) {
			info.Education = append(info.Education, d.tag)
		}
	}

	return info
}

func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryLimit {
		return text
	}
	return string(runes[:summaryLimit]) + "..."
}
