package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/filtering"
	"github.com/spigell/job-radar/internal/jobfeed"
	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/logger"
	"github.com/spigell/job-radar/internal/storage"
)

const (
	PromptBestMatches     = "Show best matches"
	PromptReportByCompany = "Report by company"
	PromptJobsToFile      = "Dump jobs to file"
	PromptTrack           = "Track an application"
	PromptExit            = "Exit"
	PromptBack            = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptBestMatches, PromptReportByCompany, PromptJobsToFile, PromptTrack, PromptExit},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank current job listings against a resume",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx or txt)")
	searchCmd.Flags().String("role", "", "role to search for, also filters job titles")
	searchCmd.Flags().String("location", "", "location to search in")
	searchCmd.Flags().String("skills", "", "comma separated skills, any of them must match")
	searchCmd.Flags().String("date-posted", "", "24h, week, month or any")
	searchCmd.Flags().String("match-score", "", "high, medium or low")
	searchCmd.Flags().BoolP("auto-report", "y", false, "print the report by company and exit without prompting")
	searchCmd.Flags().StringP("exclude-file", "e", "", "jobs dump with listings to exclude. Default is unset.")

	viper.BindPFlag("filters.exclude-file", searchCmd.Flags().Lookup("exclude-file"))
}

func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config.Filters, "", "  ")
	logger.Debug(fmt.Sprintf("starting with filters: \n %s", pretty))

	f, err := buildFeed(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the job feed", zap.Error(err))
	}
	defer f.Close()

	if path := cmd.Flag("resume").Value.String(); path != "" {
		if err := loadResume(ctx, f.Service, config.UserID, path, logger); err != nil {
			logger.Fatal("loading resume", zap.Error(err))
		}
	} else {
		logger.Warn("no resume given, every job gets the default score", zap.String("hint", "pass --resume"))
	}

	criteria := criteriaFromFlags(cmd, config.Filters.Criteria)

	ranked, err := f.RankedJobs(ctx, config.UserID, criteria)
	if err != nil {
		logger.Fatal("ranking jobs", zap.Error(err))
	}

	if ranked.Total == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	list := &jobs.Jobs{Items: ranked.Jobs}

	if auto, _ := cmd.Flags().GetBool("auto-report"); auto {
		if err := handleAction(ctx, PromptReportByCompany, f.Service, config.UserID, list, ranked, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		logger.Info("current list of jobs", zap.Int("count", list.Len()))

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, f.Service, config.UserID, list, ranked, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, svc *jobfeed.Service, userID string, list *jobs.Jobs, ranked *jobfeed.Ranked, logger *zap.Logger) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptBestMatches:
		for i, job := range ranked.BestMatches {
			logger.Info(fmt.Sprintf("%d. %s / %s", i+1, job.Title, job.Company),
				zap.Int("match_score", job.Score),
				zap.String("match_badge", string(job.Badge)),
				zap.String("summary", job.Summary),
				zap.String("url", job.ApplyURL),
			)
		}
		return nil
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(list.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", list.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptTrack:
		return track(ctx, svc, userID, list, logger)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func track(ctx context.Context, svc *jobfeed.Service, userID string, list *jobs.Jobs, logger *zap.Logger) error {
	items := make([]string, 0, list.Len()+1)
	for _, job := range list.Items {
		items = append(items, fmt.Sprintf("%s %s / %s (%d)", job.ID, job.Title, job.Company, job.Score))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	i, selected, err := jobPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	job := list.Items[i]
	app, err := svc.TrackApplication(ctx, userID, storageInput(job))
	if err != nil {
		return err
	}

	logger.Info("tracking application",
		zap.String("job_id", job.ID),
		zap.String("application_id", app.ID),
		zap.String("status", string(app.Status)),
	)
	return nil
}

func storageInput(job *jobs.Job) storage.NewApplication {
	return storage.NewApplication{JobID: job.ID, JobTitle: job.Title, Company: job.Company}
}

func loadResume(ctx context.Context, svc *jobfeed.Service, userID, path string, logger *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	r, err := svc.IngestResume(ctx, userID, filepath.Base(path), "", data)
	if err != nil {
		return err
	}

	logger.Info("resume loaded",
		zap.String("file", r.FileName),
		zap.Strings("skills", r.Info.Skills),
		zap.Int("experience_years", r.Info.ExperienceYears),
	)
	return nil
}

func criteriaFromFlags(cmd *cobra.Command, base filtering.Criteria) filtering.Criteria {
	c := base
	if v := cmd.Flag("role").Value.String(); v != "" {
		c.Role = v
	}
	if v := cmd.Flag("location").Value.String(); v != "" {
		c.Location = v
	}
	if v := cmd.Flag("skills").Value.String(); v != "" {
		c.Skills = filtering.ParseSkills(v)
	}
	if v := cmd.Flag("date-posted").Value.String(); v != "" {
		c.DatePosted = v
	}
	if v := cmd.Flag("match-score").Value.String(); v != "" {
		c.MatchScore = v
	}
	return c
}
