package mirror

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
)

const sampleCSV = `Year,Term,YearTerm,Subject,Number,Course Title,Sched Type,A+,A,A-,B+,B,B-,C+,C,C-,D+,D,D-,F,W,Primary Instructor
2020,Fall,2020-fa,CS,173,Discrete Structures,LCD,1,2,3,4,5,6,7,8,9,10,11,12,13,0,"Smith, J"
2019,Spring,2019-sp,MATH,286,Differential Equations,LEC,0,1,0,0,0,0,0,0,0,0,0,0,0,0,
`

type stringSource struct {
	body string
	err  error
}

func (s stringSource) Open(context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (stringSource) String() string { return "memory" }

type recordingUploader struct {
	paths []string
	data  [][]byte
	err   error
}

func (u *recordingUploader) UploadFile(_ context.Context, path string, data []byte) error {
	if u.err != nil {
		return u.err
	}
	u.paths = append(u.paths, path)
	u.data = append(u.data, data)
	return nil
}

func TestRunUploadsUnderFolder(t *testing.T) {
	up := &recordingUploader{}
	m := New(stringSource{body: sampleCSV}, up, "grades/")

	res, err := m.Run(context.Background(), "uiuc-gpa-dataset.csv")
	require.NoError(t, err)

	assert.Equal(t, "grades/uiuc-gpa-dataset.csv", res.Path)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, len(sampleCSV), res.Bytes)
	assert.Equal(t, []string{"grades/uiuc-gpa-dataset.csv"}, up.paths)
	assert.Equal(t, sampleCSV, string(up.data[0]))
}

func TestRunWithoutFolder(t *testing.T) {
	up := &recordingUploader{}
	res, err := New(stringSource{body: sampleCSV}, up, "").Run(context.Background(), "grades.csv")
	require.NoError(t, err)
	assert.Equal(t, "grades.csv", res.Path)
}

func TestRunRejectsBadFileNames(t *testing.T) {
	up := &recordingUploader{}
	m := New(stringSource{body: sampleCSV}, up, "grades")

	for _, name := range []string{"", "a/b.csv", "data.json"} {
		_, err := m.Run(context.Background(), name)
		assert.Error(t, err, name)
	}
	assert.Empty(t, up.paths)
}

func TestRunFetchFailureIsLoadError(t *testing.T) {
	up := &recordingUploader{}
	_, err := New(stringSource{err: errors.New("boom")}, up, "grades").Run(context.Background(), "g.csv")

	var loadErr *dataset.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "memory", loadErr.Source)
	assert.Empty(t, up.paths)
}

func TestRunSkipsEmptyDataset(t *testing.T) {
	up := &recordingUploader{}
	header := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"

	_, err := New(stringSource{body: header}, up, "grades").Run(context.Background(), "g.csv")
	require.Error(t, err)
	assert.Empty(t, up.paths)
}

func TestRunUploadFailure(t *testing.T) {
	up := &recordingUploader{err: errors.New("permission denied")}
	_, err := New(stringSource{body: sampleCSV}, up, "grades").Run(context.Background(), "g.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}
