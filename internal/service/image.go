package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mealforge/backend/config"
)

// ImageService stores recipe images in S3.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage uploads image data for a recipe and returns the public
// URL of the stored object.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	if s.s3Config == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	key := path.Join("recipe-images", recipeID.String(), uuid.New().String()+ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("uploaded recipe image: %s", publicURL)
	return publicURL, nil
}
