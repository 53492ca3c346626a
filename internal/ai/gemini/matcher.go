package gemini

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/ai"
	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/logger"
	"github.com/spigell/job-radar/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Rater implements ai.Rater on top of a Gemini generator.
type Rater struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	// MaxResumeRunes bounds the resume excerpt sent to the provider.
	MaxResumeRunes = 1500
)

func NewRater(generator contentGenerator, log *zap.Logger, maxLogLength int) *Rater {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Rater{
		generator: generator,
		logger:    logger.WithCommonFields(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

// Rate asks the model for a single integer score. An unparseable reply yields ai.ErrScoreUnparseable.
func (r *Rater) Rate(ctx context.Context, resume string, job *jobs.Job) (*ai.Rating, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, errors.New("resume text is required")
	}
	if job == nil {
		return nil, errors.New("job is required")
	}

	prompt := buildPrompt(resume, job.Description, job.Skills)

	r.logger.Debug("gemini generate content request",
		zap.String("job_id", job.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini generate content response",
		zap.String("job_id", job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	score, err := ai.ParseScore(raw)
	if err != nil {
		return nil, err
	}

	return &ai.Rating{Score: score, Raw: raw}, nil
}

func buildPrompt(resume, description string, skills []string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME}}\n\nJob:\n{{DESCRIPTION}}\n\nSkills: {{SKILLS}}\n\nReturn ONLY a number between 0-100."
	}

	replacer := strings.NewReplacer(
		"{{RESUME_LIMIT}}", strconv.Itoa(MaxResumeRunes),
		"{{RESUME}}", utils.Truncate(strings.TrimSpace(resume), MaxResumeRunes),
		"{{DESCRIPTION}}", strings.TrimSpace(description),
		"{{SKILLS}}", strings.Join(skills, ", "),
	)
	return replacer.Replace(template)
}
