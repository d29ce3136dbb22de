package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketForEnvironment(t *testing.T) {
	assert.Equal(t, "uiuc-grade-stats-dev.firebasestorage.app", BucketForEnvironment("dev"))
	assert.Equal(t, "uiuc-grade-stats-dev.firebasestorage.app", BucketForEnvironment("local"))
	assert.Equal(t, "uiuc-grade-stats.firebasestorage.app", BucketForEnvironment("prod"))
	assert.Equal(t, "", BucketForEnvironment(""))
}

func TestValidateUpload(t *testing.T) {
	s := &CloudStorage{}

	assert.NoError(t, s.validateUpload("grades/uiuc-gpa-dataset.csv", []byte("a,b\n")))
	assert.Error(t, s.validateUpload("  ", []byte("x")))
	assert.Error(t, s.validateUpload("grades/a.csv", nil))
	assert.Error(t, s.validateUpload("grades/../secret.csv", []byte("x")))
	assert.Error(t, s.validateUpload("grades//a.csv", []byte("x")))
}

func TestDetectContentType(t *testing.T) {
	s := &CloudStorage{}

	assert.Equal(t, "text/csv", s.detectContentType("grades/a.CSV"))
	assert.Equal(t, "application/json", s.detectContentType("selections.json"))
	assert.Equal(t, "application/octet-stream", s.detectContentType("grades/no-extension"))
}

func TestObjectSourceString(t *testing.T) {
	s := &CloudStorage{bucketName: "bucket"}
	assert.Equal(t, "gs://bucket/grades/a.csv", s.DatasetSource("grades/a.csv").String())
}

func TestSanitizeDocID(t *testing.T) {
	assert.Equal(t, "my-courses", sanitizeDocID(" my/courses "))
	assert.Equal(t, "courses", sanitizeDocID("cour ses"))
}

func TestNewAppRequiresCredentials(t *testing.T) {
	_, err := NewApp(context.Background(), "", "")
	require.Error(t, err)

	_, err = NewApp(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
