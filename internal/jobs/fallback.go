package jobs

import "time"

// SourceFallback tags listings served when the provider is unavailable.
const SourceFallback = "fallback"

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var fallbackJobs = []*Job{
	{
		ID:          "1",
		Title:       "Senior React Developer",
		Company:     "TechCorp Inc.",
		Location:    "San Francisco, CA",
		Description: "We are looking for a Senior React Developer with 5+ years of experience in building scalable web applications. Must have experience with React Hooks, Context API, and state management libraries.",
		JobType:     "Full-time",
		WorkMode:    "Remote",
		Skills:      []string{"React", "JavaScript", "TypeScript", "Redux", "CSS"},
		SalaryText:  "$120,000 - $160,000",
		PostedAt:    day("2024-01-20"),
		ApplyURL:    "https://example.com/apply/1",
	},
	{
		ID:          "2",
		Title:       "Frontend Engineer",
		Company:     "StartupXYZ",
		Location:    "New York, NY",
		Description: "Join our fast-growing startup as a Frontend Engineer. Work with modern technologies like Next.js, Tailwind CSS, and GraphQL.",
		JobType:     "Full-time",
		WorkMode:    "Hybrid",
		Skills:      []string{"React", "Next.js", "Tailwind CSS", "GraphQL", "JavaScript"},
		SalaryText:  "$90,000 - $130,000",
		PostedAt:    day("2024-01-19"),
		ApplyURL:    "https://example.com/apply/2",
	},
	{
		ID:          "3",
		Title:       "React Native Developer",
		Company:     "MobileFirst",
		Location:    "Remote",
		Description: "Looking for React Native developer to build cross-platform mobile applications. Experience with Expo and mobile deployment required.",
		JobType:     "Contract",
		WorkMode:    "Remote",
		Skills:      []string{"React Native", "JavaScript", "Expo", "iOS", "Android"},
		SalaryText:  "$80 - $120/hr",
		PostedAt:    day("2024-01-18"),
		ApplyURL:    "https://example.com/apply/3",
	},
	{
		ID:          "4",
		Title:       "Full Stack Developer",
		Company:     "WebSolutions",
		Location:    "Austin, TX",
		Description: "Full stack developer needed for MERN stack applications. Backend experience with Node.js and MongoDB required.",
		JobType:     "Full-time",
		WorkMode:    "On-site",
		Skills:      []string{"React", "Node.js", "MongoDB", "Express", "JavaScript"},
		SalaryText:  "$100,000 - $140,000",
		PostedAt:    day("2024-01-17"),
		ApplyURL:    "https://example.com/apply/4",
	},
	{
		ID:          "5",
		Title:       "UI/UX Developer",
		Company:     "DesignHub",
		Location:    "Remote",
		Description: "UI/UX Developer with strong React skills and design sense. Experience with Figma and design systems preferred.",
		JobType:     "Part-time",
		WorkMode:    "Remote",
		Skills:      []string{"React", "Figma", "UI/UX", "CSS", "JavaScript"},
		SalaryText:  "$70,000 - $90,000",
		PostedAt:    day("2024-01-16"),
		ApplyURL:    "https://example.com/apply/5",
	},
	{
		ID:          "6",
		Title:       "Python Backend Engineer",
		Company:     "DataSystems",
		Location:    "Boston, MA",
		Description: "Backend engineer specializing in Python and Django. Experience with REST APIs and database design.",
		JobType:     "Full-time",
		WorkMode:    "Hybrid",
		Skills:      []string{"Python", "Django", "PostgreSQL", "REST API", "Docker"},
		SalaryText:  "$110,000 - $150,000",
		PostedAt:    day("2024-01-15"),
		ApplyURL:    "https://example.com/apply/6",
	},
	{
		ID:          "7",
		Title:       "DevOps Engineer",
		Company:     "CloudTech",
		Location:    "Seattle, WA",
		Description: "DevOps engineer with AWS experience. Knowledge of CI/CD pipelines and infrastructure as code.",
		JobType:     "Full-time",
		WorkMode:    "Remote",
		Skills:      []string{"AWS", "Docker", "Kubernetes", "Terraform", "Linux"},
		SalaryText:  "$130,000 - $170,000",
		PostedAt:    day("2024-01-14"),
		ApplyURL:    "https://example.com/apply/7",
	},
	{
		ID:          "8",
		Title:       "JavaScript Intern",
		Company:     "LearnTech",
		Location:    "Chicago, IL",
		Description: "Summer internship for JavaScript developers. Learn React, Node.js, and modern web development.",
		JobType:     "Internship",
		WorkMode:    "On-site",
		Skills:      []string{"JavaScript", "React", "HTML", "CSS"},
		SalaryText:  "$25/hr",
		PostedAt:    day("2024-01-20"),
		ApplyURL:    "https://example.com/apply/8",
	},
}

// Fallback returns a fresh copy of the static listings served when the provider is unavailable.
func Fallback() *Jobs {
	out := (&Jobs{Items: fallbackJobs}).Clone()
	for _, job := range out.Items {
		job.Source = SourceFallback
	}
	return out
}
