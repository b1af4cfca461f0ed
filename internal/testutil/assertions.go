package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONResponse decodes the JSON response body into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies a JSON error body with the expected status
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var body struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, resp, &body)
	assert.Contains(t, body.Error, expectedMessage, "error message mismatch")
}

// DoJSON issues a request with a JSON body and optional bearer token
func DoJSON(t *testing.T, method, url string, payload interface{}, token string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err, "failed to marshal payload")
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "failed to build request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request failed")
	return resp
}

// MultipartForm builds a multipart body from field values and an optional
// image file, returning the body and content type
func MultipartForm(t *testing.T, fields map[string]string, imageName string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err, "failed to create form file")
		_, err = part.Write(imageData)
		require.NoError(t, err, "failed to write image data")
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

// DoMultipart issues a multipart request with a bearer token
func DoMultipart(t *testing.T, method, url string, fields map[string]string, imageName string, imageData []byte, token string) *http.Response {
	t.Helper()

	body, contentType := MultipartForm(t, fields, imageName, imageData)

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "failed to build request")
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request failed")
	return resp
}

// RegisterAndLogin registers a fresh user over HTTP and returns its token
func RegisterAndLogin(t *testing.T, ts *TestServer, name, email, password string) string {
	t.Helper()

	resp := DoJSON(t, http.MethodPost, ts.URL("/register"), map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "registration failed")

	loginResp := DoJSON(t, http.MethodPost, ts.URL("/login"), map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode, "login failed")

	var result struct {
		Token string `json:"token"`
	}
	AssertJSONResponse(t, loginResp, &result)
	require.NotEmpty(t, result.Token)
	return result.Token
}

// UniqueEmail returns an email that will not collide across tests
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%s@test.local", prefix, uuid.New().String()[:8])
}
