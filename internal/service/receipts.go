package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	a "ishan/rms-api/aws"
	"ishan/rms-api/pkg/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// ReceiptStorage stores uploaded receipt files and returns the reference
// recorded on the request. Storage mechanics are a collaborator of the
// workflow, never part of its transaction.
type ReceiptStorage interface {
	Save(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error)
}

const keyLength = 20

// S3Receipts keeps receipts in an S3 bucket under a random key.
type S3Receipts struct {
	S3 *a.S3Client
}

func NewS3Receipts(c *a.S3Client) *S3Receipts {
	return &S3Receipts{S3: c}
}

func (r *S3Receipts) Save(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error) {
	key := util.RandStr(keyLength) + filepath.Ext(name)

	_, err := r.S3.C.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        r.S3.Bucket,
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt to S3, %w", err)
	}

	return key, nil
}

// LocalReceipts writes receipts into a directory on disk.
type LocalReceipts struct {
	Dir string
}

func NewLocalReceipts() (*LocalReceipts, error) {
	dir := viper.GetString("storage.local_dir")

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory, %w", err)
	}

	return &LocalReceipts{Dir: dir}, nil
}

func (r *LocalReceipts) Save(_ context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	key := util.RandStr(keyLength) + filepath.Ext(name)

	f, err := os.Create(filepath.Join(r.Dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write receipt file, %w", err)
	}

	return key, nil
}
