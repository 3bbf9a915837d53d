package refdata

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeSource struct {
	objects map[string]string
	closed  bool
}

func (f *fakeSource) DownloadFile(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	body, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return &trackingCloser{Reader: strings.NewReader(body), closed: &f.closed}, nil
}

type trackingCloser struct {
	io.Reader
	closed *bool
}

func (c *trackingCloser) Close() error {
	*c.closed = true
	return nil
}

func TestLoadObject(t *testing.T) {
	src := &fakeSource{objects: map[string]string{
		"reference/pc6.csv": "PC6;Gemeentenaam\n3584CS;Utrecht\n1012AB;Amsterdam\n",
	}}

	idx, err := LoadObject(context.Background(), src, "reference", "pc6.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", idx.Len())
	}
	if !src.closed {
		t.Fatalf("expected object body to be closed")
	}
}

func TestLoadObjectMissingKey(t *testing.T) {
	src := &fakeSource{objects: map[string]string{}}

	_, err := LoadObject(context.Background(), src, "reference", "missing.csv")
	var loadErr *DatasetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DatasetLoadError, got %v", err)
	}
	if loadErr.Source != "s3://reference/missing.csv" {
		t.Fatalf("unexpected source %q", loadErr.Source)
	}
}
