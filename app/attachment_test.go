package app

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "receipt.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 test receipt"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAttachmentUpload(t *testing.T) {
	r := newTestAPI(t, false)

	userToken := registerAndLogin(t, r, "alice", "a@x.com", "")
	id := createRequest(t, r, userToken)

	w := uploadFile(t, r, fmt.Sprintf("/api/requests/%d/attachment", id), userToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "attachment")

	// The reference shows up on the detail read
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/requests/%d", id), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".pdf")

	// Once submitted, the draft-only guard kicks in
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/requests/%d/submit", id), userToken, nil)

	w = uploadFile(t, r, fmt.Sprintf("/api/requests/%d/attachment", id), userToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentUpload_NoFile(t *testing.T) {
	r := newTestAPI(t, false)

	userToken := registerAndLogin(t, r, "alice", "a@x.com", "")
	id := createRequest(t, r, userToken)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/requests/%d/attachment", id), userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
