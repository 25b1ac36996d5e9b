package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-portal/internal/models"
)

type fakeResumeRepo struct {
	rows      map[uint]models.Resume
	upsertErr error
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{rows: make(map[uint]models.Resume)}
}

func (f *fakeResumeRepo) Upsert(resume *models.Resume) (string, error) {
	if f.upsertErr != nil {
		return "", f.upsertErr
	}
	previous := ""
	if existing, ok := f.rows[resume.UserID]; ok {
		previous = existing.FilePath
	}
	f.rows[resume.UserID] = *resume
	return previous, nil
}

func (f *fakeResumeRepo) FindByUserID(userID uint) (*models.Resume, error) {
	resume, ok := f.rows[userID]
	if !ok {
		return nil, errors.New("resume not found")
	}
	return &resume, nil
}

func (f *fakeResumeRepo) ListAll() ([]models.AdminResumeRow, error) {
	return nil, nil
}

// makeFileHeader runs data through a real multipart round trip so the
// pipeline sees the same *multipart.FileHeader a Fiber handler would.
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["resume"]
	require.Len(t, files, 1)
	return files[0]
}

func docxFixtureBytes(t *testing.T) []byte {
	t.Helper()
	path := writeDocxFixture(t, t.TempDir())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func newTestPredictor(t *testing.T, score float64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"score": score})
	}))
	t.Cleanup(server.Close)
	return server
}

func newPipeline(t *testing.T, repo *fakeResumeRepo, predictorURL string, hook OldFileHook) ResumeService {
	t.Helper()

	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	return NewResumeService(
		repo,
		storage,
		NewExtractorService(),
		NewScorerService(predictorConfig(predictorURL)),
		5*1024*1024,
		hook,
	)
}

func TestProcessUploadScoresAndPersists(t *testing.T) {
	repo := newFakeResumeRepo()
	predictor := newTestPredictor(t, 85)
	svc := newPipeline(t, repo, predictor.URL, nil)

	file := makeFileHeader(t, "jane-cv.docx", MimeDOCX, docxFixtureBytes(t))

	result, err := svc.ProcessUpload(context.Background(), 7, file)
	require.NoError(t, err)

	assert.Equal(t, 85, result.Score)
	assert.Equal(t, FeedbackForScore(85), result.Feedback)
	assert.Equal(t, "jane-cv.docx", result.File.OriginalName)

	stored, err := repo.FindByUserID(7)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 85, *stored.Score)
	assert.Equal(t, FeedbackForScore(85), stored.Feedback)
	assert.Equal(t, MimeDOCX, stored.MimeType)
	assert.Equal(t, BandGood, BandForScore(stored.Score))

	// The stored file must actually be on disk.
	if _, err := os.Stat(stored.FilePath); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestProcessUploadReplacesExistingResume(t *testing.T) {
	repo := newFakeResumeRepo()
	predictor := newTestPredictor(t, 72)

	var replacedPaths []string
	svc := newPipeline(t, repo, predictor.URL, func(path string) {
		replacedPaths = append(replacedPaths, path)
	})

	data := docxFixtureBytes(t)

	_, err := svc.ProcessUpload(context.Background(), 7, makeFileHeader(t, "first.docx", MimeDOCX, data))
	require.NoError(t, err)
	first, err := repo.FindByUserID(7)
	require.NoError(t, err)

	_, err = svc.ProcessUpload(context.Background(), 7, makeFileHeader(t, "second.docx", MimeDOCX, data))
	require.NoError(t, err)

	// Still exactly one row, holding the second upload's metadata.
	assert.Len(t, repo.rows, 1)
	second, err := repo.FindByUserID(7)
	require.NoError(t, err)
	assert.Equal(t, "second.docx", second.OriginalName)
	assert.NotEqual(t, first.FileName, second.FileName)

	// The replaced file path went to the hook, and the file itself was
	// left on disk for an external cleanup routine.
	require.Len(t, replacedPaths, 1)
	assert.Equal(t, first.FilePath, replacedPaths[0])
	if _, err := os.Stat(first.FilePath); err != nil {
		t.Fatalf("replaced file should remain on disk: %v", err)
	}
}

func TestProcessUploadPersistsScoringFallback(t *testing.T) {
	repo := newFakeResumeRepo()

	// Predictor is down: the upload still succeeds with the zero-score
	// fallback persisted.
	predictor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	predictor.Close()

	svc := newPipeline(t, repo, predictor.URL, nil)

	result, err := svc.ProcessUpload(context.Background(), 7, makeFileHeader(t, "cv.docx", MimeDOCX, docxFixtureBytes(t)))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, ScoringFailedFeedback, result.Feedback)

	stored, err := repo.FindByUserID(7)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 0, *stored.Score)
	assert.Equal(t, ScoringFailedFeedback, stored.Feedback)
}

func TestProcessUploadScoresDespiteCanceledRequest(t *testing.T) {
	repo := newFakeResumeRepo()
	predictor := newTestPredictor(t, 85)
	svc := newPipeline(t, repo, predictor.URL, nil)

	// The client disconnected before scoring. The pipeline still finishes
	// server-side with the real score, not the zero-score fallback.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.ProcessUpload(ctx, 7, makeFileHeader(t, "cv.docx", MimeDOCX, docxFixtureBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, 85, result.Score)

	stored, err := repo.FindByUserID(7)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 85, *stored.Score)
	assert.NotEqual(t, ScoringFailedFeedback, stored.Feedback)
}

func TestProcessUploadRejectsInvalidType(t *testing.T) {
	repo := newFakeResumeRepo()
	predictor := newTestPredictor(t, 85)
	svc := newPipeline(t, repo, predictor.URL, nil)

	file := makeFileHeader(t, "notes.txt", "text/plain", []byte("plain text"))

	_, err := svc.ProcessUpload(context.Background(), 7, file)
	require.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, repo.rows)
}

func TestProcessUploadRejectsOversizedFile(t *testing.T) {
	repo := newFakeResumeRepo()
	predictor := newTestPredictor(t, 85)

	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())
	svc := NewResumeService(
		repo,
		storage,
		NewExtractorService(),
		NewScorerService(predictorConfig(predictor.URL)),
		64, // tiny limit for the test
		nil,
	)

	file := makeFileHeader(t, "cv.docx", MimeDOCX, docxFixtureBytes(t))

	_, err := svc.ProcessUpload(context.Background(), 7, file)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, repo.rows)
}

func TestProcessUploadAbortsOnCorruptFile(t *testing.T) {
	repo := newFakeResumeRepo()
	predictor := newTestPredictor(t, 85)
	svc := newPipeline(t, repo, predictor.URL, nil)

	file := makeFileHeader(t, "cv.docx", MimeDOCX, []byte("not a zip archive"))

	_, err := svc.ProcessUpload(context.Background(), 7, file)
	require.Error(t, err)

	// No row was written and no prior state was touched.
	assert.Empty(t, repo.rows)
}
