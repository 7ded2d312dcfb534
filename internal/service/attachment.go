package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/crypto/blake2b"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/models"
)

// AttachmentStore is the persistence contract for attachments.
type AttachmentStore interface {
	Get(ctx context.Context, id uint) (*models.Attachment, error)
	Save(ctx context.Context, attachment *models.Attachment) error
	Delete(ctx context.Context, id uint) error
}

// RecipeChecker reports whether a recipe exists.
type RecipeChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// EncodePayload renders attachment bytes for JSON transport.
func EncodePayload(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodePayload parses a base64 payload received over the API.
func DecodePayload(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: attachment content is not valid base64: %w", ErrMalformed, err)
	}
	return data, nil
}

// Checksum returns the hex blake2b-256 digest of the attachment payload.
func Checksum(attachment *models.Attachment) string {
	sum := blake2b.Sum256(attachment.Content)
	return hex.EncodeToString(sum[:])
}

// AttachmentService stores binary files attached to recipes.
type AttachmentService struct {
	attachments AttachmentStore
	recipes     RecipeChecker
	maxBytes    int64
}

func NewAttachmentService(attachments AttachmentStore, recipes RecipeChecker, maxBytes int64) *AttachmentService {
	return &AttachmentService{attachments: attachments, recipes: recipes, maxBytes: maxBytes}
}

// MaxBytes is the largest payload Create accepts; zero means unlimited.
func (s *AttachmentService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *AttachmentService) Get(ctx context.Context, id uint) (*models.Attachment, error) {
	return s.attachments.Get(ctx, id)
}

func (s *AttachmentService) Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {
	attachment.ID = 0
	attachment.FileName = strings.TrimSpace(attachment.FileName)
	if attachment.FileName == "" {
		return nil, invalid("fileName", "fileName is required")
	}
	if strings.TrimSpace(attachment.FileType) == "" {
		attachment.FileType = fileTypeFromName(attachment.FileName)
	}
	if s.maxBytes > 0 && int64(len(attachment.Content)) > s.maxBytes {
		return nil, invalid("content", fmt.Sprintf("attachment exceeds %d bytes", s.maxBytes))
	}
	if attachment.RecipeID == 0 {
		return nil, invalid("recipeId", "recipeId is required")
	}

	exists, err := s.recipes.Exists(ctx, attachment.RecipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, attachment.RecipeID)
	}

	if err := s.attachments.Save(ctx, attachment); err != nil {
		return nil, err
	}
	applog.Debug(ctx, "attachment stored", "id", attachment.ID, "recipeID", attachment.RecipeID, "bytes", len(attachment.Content))
	return attachment, nil
}

func (s *AttachmentService) Delete(ctx context.Context, id uint) error {
	if err := s.attachments.Delete(ctx, id); err != nil {
		return err
	}
	applog.Debug(ctx, "attachment deleted", "id", id)
	return nil
}

// ExtractText returns the plain text of a PDF attachment.
func (s *AttachmentService) ExtractText(ctx context.Context, id uint) (string, error) {
	attachment, err := s.attachments.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !isPDF(attachment) {
		return "", invalid("fileType", "text extraction is only supported for PDF attachments")
	}
	text, err := extractTextFromPDF(attachment.Content)
	if err != nil {
		return "", fmt.Errorf("%w: unreadable PDF: %w", ErrMalformed, err)
	}
	return text, nil
}

func isPDF(attachment *models.Attachment) bool {
	return strings.Contains(strings.ToLower(attachment.FileType), "pdf") ||
		strings.EqualFold(filepath.Ext(attachment.FileName), ".pdf")
}

func extractTextFromPDF(data []byte) (text string, err error) {
	// The pdf package panics on some truncated inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func fileTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
