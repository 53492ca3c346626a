package adzuna

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobs"
	"github.com/spigell/job-radar/internal/skills"
	"github.com/spigell/job-radar/internal/textclean"
	"github.com/spigell/job-radar/internal/utils"
)

const (
	// MaxResultsPerPage is the provider's page size limit.
	MaxResultsPerPage     = 50
	defaultResultsPerPage = 30
	defaultKeyword        = "software"

	maxDescriptionLength = 1000

	untitledPosition = "Untitled Position"
	unknownCompany   = "Unknown Company"
	defaultLocation  = "Remote"
	defaultCurrency  = "USD"
	defaultCategory  = "general"
	defaultJobType   = "permanent"
)

type SearchParams struct {
	// adzuna is the query parameter name. Fields tagged "-" are not sent as query values.
	Keyword        string `adzuna:"what"`
	Location       string `adzuna:"where"`
	Page           int    `adzuna:"-"`
	ResultsPerPage int    `adzuna:"results_per_page"`
	SortBy         string `adzuna:"sort_by"`
	Country        string `adzuna:"-"`
	FullTime       *bool  `adzuna:"full_time"`
	Permanent      *bool  `adzuna:"permanent"`
}

type searchResponse struct {
	Results []map[string]any `json:"results"`
	Count   int              `json:"count"`
}

type result struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Tag string `json:"tag"`
	} `json:"category"`
	SalaryMin         float64 `json:"salary_min"`
	SalaryMax         float64 `json:"salary_max"`
	SalaryCurrency    string  `json:"salary_currency_code"`
	SalaryIsPredicted bool    `json:"salary_is_predicted"`
	Created           string  `json:"created"`
	RedirectURL       string  `json:"redirect_url"`
	ContractType      string  `json:"contract_type"`
	ContractTime      string  `json:"contract_time"`
}

// Search runs a single provider query and returns the normalized listings in provider order.
// There are no retries; any failure wraps ErrProviderUnavailable.
func (c *Client) Search(ctx context.Context, params SearchParams) (*jobs.Jobs, error) {
	if !c.CredentialsConfigured() {
		return nil, fmt.Errorf("%w: adzuna credentials are not configured", ErrProviderUnavailable)
	}

	params = c.withDefaults(params)

	q := buildParams(&params)
	q.Set("app_id", c.credentials.AppID)
	q.Set("app_key", c.credentials.AppKey)

	searchURL := fmt.Sprintf("%s/%s/search/%d", strings.TrimRight(c.APIURL, "/"), url.PathEscape(params.Country), params.Page)

	c.logger.Info("fetching jobs",
		zap.String("keyword", params.Keyword),
		zap.String("location", params.Location),
		zap.Int("page", params.Page),
		zap.Int("results_per_page", params.ResultsPerPage),
	)

	var response searchResponse
	if err := c.getJSON(ctx, searchURL, q, &response); err != nil {
		c.logger.Warn("adzuna search failed", zap.Error(err))
		return nil, err
	}

	var results []result
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &results,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err := decoder.Decode(response.Results); err != nil {
		return nil, fmt.Errorf("%w: malformed results: %w", ErrProviderUnavailable, err)
	}

	now := c.now()
	out := &jobs.Jobs{Items: make([]*jobs.Job, 0, len(results))}
	for _, r := range results {
		out.Items = append(out.Items, transform(r, now))
	}

	c.logger.Info("retrieved jobs", zap.Int("count", out.Len()), zap.Int("total_found", response.Count))

	return out, nil
}

func (c *Client) withDefaults(params SearchParams) SearchParams {
	if strings.TrimSpace(params.Keyword) == "" {
		params.Keyword = defaultKeyword
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.ResultsPerPage <= 0 {
		params.ResultsPerPage = defaultResultsPerPage
	}
	params.ResultsPerPage = min(params.ResultsPerPage, MaxResultsPerPage)
	if strings.TrimSpace(params.Country) == "" {
		params.Country = c.Country
	}
	if params.Country == "" {
		params.Country = defaultCountry
	}
	return params
}

func transform(r result, now time.Time) *jobs.Job {
	description := utils.Truncate(textclean.Normalize(r.Description), maxDescriptionLength)

	job := &jobs.Job{
		ID:          Provider + "_" + r.ID,
		Source:      Provider,
		Title:       orDefault(r.Title, untitledPosition),
		Company:     orDefault(r.Company.DisplayName, unknownCompany),
		Location:    orDefault(r.Location.DisplayName, defaultLocation),
		Description: description,
		Salary: &jobs.Salary{
			Currency:    orDefault(r.SalaryCurrency, defaultCurrency),
			IsPredicted: r.SalaryIsPredicted,
		},
		PostedAt: postedAt(r.Created, now),
		ApplyURL: r.RedirectURL,
		Category: orDefault(r.Category.Tag, defaultCategory),
		JobType:  orDefault(r.ContractType, defaultJobType),
		Skills:   skills.Extract(description),
	}

	if r.SalaryMin != 0 {
		job.Salary.Min = &r.SalaryMin
	}
	if r.SalaryMax != 0 {
		job.Salary.Max = &r.SalaryMax
	}

	return job
}

var postedLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

// postedAt parses the provider timestamp. A missing value means "now";
// an unparseable one yields the zero time.
func postedAt(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, layout := range postedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	value := reflect.ValueOf(params).Elem()

	for _, field := range fields {
		key := field.Tag.Get("adzuna")
		if key == "" || key == "-" {
			continue
		}

		v := value.Field(field.Index[0])
		switch v.Kind() {
		case reflect.Pointer:
			if v.IsNil() {
				continue
			}
			if b, ok := v.Interface().(*bool); ok {
				q.Set(key, strconv.FormatBool(*b))
			}
		default:
			s := fmt.Sprintf("%v", v.Interface())
			if s != "" && s != "0" {
				q.Set(key, s)
			}
		}
	}

	return q
}

// IsUnavailable reports whether err is a provider availability failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}
