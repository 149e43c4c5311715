package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"unischool/site-api/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// AvatarStore uploads profile pictures to the configured bucket. Keys
// are stable per user so a re-upload replaces the old image.
type AvatarStore struct {
	S3        *storage.Client
	publicURL string
}

func NewAvatarStore(s *storage.Client) *AvatarStore {
	return &AvatarStore{
		S3:        s,
		publicURL: strings.TrimSuffix(viper.GetString("storage.avatars.public_url"), "/"),
	}
}

// Upload stores the image under avatars/<userID> and returns the public
// URL to persist on the profile.
func (a *AvatarStore) Upload(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (string, error) {
	key := "avatars/" + userID

	_, err := a.S3.C.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        a.S3.Bucket,
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar, %w", err)
	}

	return a.publicURL + "/" + key, nil
}
