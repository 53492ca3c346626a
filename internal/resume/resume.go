// Package resume turns uploaded resume files into the text and signals used for matching.
package resume

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/job-radar/internal/textclean"
)

// MaxUploadBytes is the largest accepted resume file.
const MaxUploadBytes = 10 << 20

const (
	MIMEPDF  = "application/pdf"
	MIMEText = "text/plain"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrUnsupportedType = errors.New("file type not supported, use PDF, TXT or DOCX")
	ErrEmpty           = errors.New("the uploaded file appears to be empty")
	ErrTooLarge        = fmt.Errorf("file size exceeds %dMB limit", MaxUploadBytes>>20)
)

// Resume is the single stored resume of a user. Text is normalized once at ingestion.
type Resume struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	FileName   string        `json:"fileName"`
	FileType   string        `json:"fileType"`
	Text       string        `json:"text"`
	Info       ExtractedInfo `json:"extractedInfo"`
	UploadedAt time.Time     `json:"uploadDate"`
}

// Content returns the resume text, or "" for a nil resume.
func (r *Resume) Content() string {
	if r == nil {
		return ""
	}
	return r.Text
}

// Ingest extracts, normalizes and analyses an uploaded file.
func Ingest(userID, fileName, mimeType string, data []byte, now time.Time) (*Resume, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	mimeType = DetectType(fileName, mimeType)
	plain, err := ExtractText(data, mimeType)
	if err != nil {
		return nil, err
	}

	text := textclean.Normalize(plain)
	if text == "" {
		return nil, ErrEmpty
	}

	return &Resume{
		ID:         "resume_" + uuid.NewString(),
		UserID:     userID,
		FileName:   filepath.Base(fileName),
		FileType:   mimeType,
		Text:       text,
		Info:       ExtractResumeInfo(plain),
		UploadedAt: now,
	}, nil
}

// FromText builds a resume from text supplied directly, as the CLI does.
func FromText(userID, text string, now time.Time) (*Resume, error) {
	normalized := textclean.Normalize(text)
	if normalized == "" {
		return nil, ErrEmpty
	}
	return &Resume{
		ID:         "resume_" + uuid.NewString(),
		UserID:     userID,
		FileType:   MIMEText,
		Text:       normalized,
		Info:       ExtractResumeInfo(text),
		UploadedAt: now,
	}, nil
}

var extensionTypes = map[string]string{
	".pdf":  MIMEPDF,
	".txt":  MIMEText,
	".docx": MIMEDOCX,
}

// DetectType trusts a specific MIME type and falls back to the file extension
// for empty or generic ones.
func DetectType(fileName, mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType != "" && mimeType != "application/octet-stream" {
		return mimeType
	}
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return t
	}
	return mimeType
}
