package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/healthara/backend/config"
	"github.com/pageza/healthara/backend/internal/models"
)

const exportFilenameLayout = "20060102_150405"

// ExportFilename names the downloadable export for the given time
func ExportFilename(now time.Time) string {
	return "healthara_export_" + now.Format(exportFilenameLayout) + ".json"
}

// BuildExport bundles a copy of the profile with the saved conversations
func BuildExport(profile *models.HealthProfile, history []models.SavedConversation, now time.Time) models.Export {
	chats := make([]models.SavedConversation, len(history))
	for i, saved := range history {
		chats[i] = models.SavedConversation{
			Timestamp:    saved.Timestamp,
			Conversation: append([]models.ChatMessage{}, saved.Conversation...),
		}
	}

	return models.Export{
		HealthProfile:   *profile.Clone(),
		ChatHistory:     chats,
		ExportTimestamp: now,
	}
}

// MarshalExport renders the export as indented JSON
func MarshalExport(export models.Export) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// ParseExport reads an export document back
func ParseExport(data []byte) (*models.Export, error) {
	var export models.Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	if export.ChatHistory == nil {
		export.ChatHistory = []models.SavedConversation{}
	}
	return &export, nil
}

// ExportUploader stores exports in S3 and hands back a short-lived download link
type ExportUploader struct {
	s3  *config.S3Config
	ttl time.Duration
}

func NewExportUploader(s3cfg *config.S3Config, ttl time.Duration) *ExportUploader {
	return &ExportUploader{s3: s3cfg, ttl: ttl}
}

// Upload puts the document under exports/<session>/<filename> and returns its key and a presigned URL
func (u *ExportUploader) Upload(ctx context.Context, sessionID, filename string, data []byte) (string, string, error) {
	key := path.Join("exports", sessionID, filename)

	_, err := u.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := u.s3.GeneratePresignedURL(ctx, key, u.ttl)
	if err != nil {
		return key, "", fmt.Errorf("failed to presign export: %w", err)
	}
	return key, url, nil
}
