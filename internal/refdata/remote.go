package refdata

import (
	"context"
	"io"
)

// ObjectSource opens dataset objects in a bucket.
type ObjectSource interface {
	DownloadFile(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// LoadObject reads the CSV dataset stored as key in bucket.
func LoadObject(ctx context.Context, src ObjectSource, bucket, key string) (*Index, error) {
	source := "s3://" + bucket + "/" + key

	body, err := src.DownloadFile(ctx, bucket, key)
	if err != nil {
		return nil, &DatasetLoadError{Source: source, Err: err}
	}
	defer body.Close()

	return LoadReader(body, source)
}
