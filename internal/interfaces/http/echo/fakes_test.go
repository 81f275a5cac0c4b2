package echo_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"testing"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type fakeUploadStore struct {
	savedName string
	savedBody string
	path      string
	err       error
	files     map[string]string
	removed   []string
}

func (f *fakeUploadStore) Save(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.savedName = name
	f.savedBody = string(data)
	path := f.path
	if path == "" {
		path = "csv_uploads/" + name
	}
	if f.files == nil {
		f.files = map[string]string{}
	}
	if _, exists := f.files[path]; exists {
		return "", fmt.Errorf("store upload %s: %w", path, os.ErrExist)
	}
	f.files[path] = f.savedBody
	return path, nil
}

func (f *fakeUploadStore) Remove(ctx context.Context, path string) error {
	f.removed = append(f.removed, path)
	delete(f.files, path)
	return nil
}

type fakeSubmitImport struct {
	in     app.SubmitImportInput
	called bool
	out    app.SubmitImportOutput
	err    error
}

func (f *fakeSubmitImport) Execute(ctx context.Context, in app.SubmitImportInput) (app.SubmitImportOutput, error) {
	f.called = true
	f.in = in
	if f.err != nil {
		return app.SubmitImportOutput{}, f.err
	}
	return f.out, nil
}

type fakeListImports struct {
	in  app.ListImportSummariesInput
	out app.ListImportSummariesOutput
	err error
}

func (f *fakeListImports) Execute(ctx context.Context, in app.ListImportSummariesInput) (app.ListImportSummariesOutput, error) {
	f.in = in
	if f.err != nil {
		return app.ListImportSummariesOutput{}, f.err
	}
	return f.out, nil
}

func multipartBody(t *testing.T, field, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}
