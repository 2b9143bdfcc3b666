package api

import (
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthara/backend/internal/mocks"
	"github.com/pageza/healthara/backend/internal/service"
)

func TestExportDownload(t *testing.T) {
	api := newTestAPI(t, nil)
	api.do(t, http.MethodPut, "/api/v1/profile/personal", map[string]any{"age": 28})

	w := api.do(t, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, regexp.MustCompile(`^attachment; filename="healthara_export_\d{8}_\d{6}\.json"$`), w.Header().Get("Content-Disposition"))

	export, err := service.ParseExport(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 28, *export.HealthProfile.PersonalInfo.Age)
	assert.Empty(t, export.ChatHistory)
}

func TestExportUpload(t *testing.T) {
	t.Run("should be unavailable without object storage", func(t *testing.T) {
		api := newTestAPI(t, nil)
		w := api.do(t, http.MethodPost, "/api/v1/export/upload", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("should upload and return the link", func(t *testing.T) {
		uploader := &mocks.MockExportUploader{}
		api := newTestAPI(t, uploader)
		uploader.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(name string) bool {
			return regexp.MustCompile(`^healthara_export_\d{8}_\d{6}\.json$`).MatchString(name)
		}), mock.Anything).Return("exports/s/file.json", "https://bucket.example/exports/s/file.json?sig", nil)

		w := api.do(t, http.MethodPost, "/api/v1/export/upload", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "exports/s/file.json", body["key"])
		assert.Equal(t, "https://bucket.example/exports/s/file.json?sig", body["url"])
		uploader.AssertExpectations(t)
	})

	t.Run("should report upload failures", func(t *testing.T) {
		uploader := &mocks.MockExportUploader{}
		api := newTestAPI(t, uploader)
		uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", "", errors.New("access denied"))

		w := api.do(t, http.MethodPost, "/api/v1/export/upload", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
