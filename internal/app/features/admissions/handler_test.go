// internal/app/features/admissions/handler_test.go
package admissions

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeInviteAdmin struct {
	entries   []models.AllowedEmail
	deleted   []primitive.ObjectID
	delResult int64
}

func (f *fakeInviteAdmin) List(_ context.Context, page, limit int64, search string) ([]models.AllowedEmail, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeInviteAdmin) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.deleted = append(f.deleted, id)
	return f.delResult, nil
}

func newTestHandler(admin *fakeInviteAdmin) (*Handler, *fakeInvites, *fakeMailer) {
	invites := &fakeInvites{}
	mail := &fakeMailer{}
	svc := newTestService(nil, invites, nil, mail)
	if admin == nil {
		admin = &fakeInviteAdmin{}
	}
	return NewHandler(svc, admin, zap.NewNop()), invites, mail
}

func TestHandleAdd(t *testing.T) {
	h, invites, _ := newTestHandler(nil)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	body := `{"emails":["new@club.edu"]}`
	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var env struct {
		Success bool        `json:"success"`
		Data    BatchResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data.AdmittedCount != 1 {
		t.Fatalf("envelope = %+v, want one admitted", env)
	}
	if _, ok := invites.created["new@club.edu"]; !ok {
		t.Fatal("allowlist entry not created")
	}
}

func TestHandleAddRejectsEmptyBatch(t *testing.T) {
	h, _, _ := newTestHandler(nil)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(`{"emails":[]}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleUploadCSV(t *testing.T) {
	h, invites, _ := newTestHandler(nil)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "members.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write([]byte("Email\ncsv@club.edu\n"))
	mw.Close()

	resp, err := http.Post(srv.URL+"/upload-csv", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, ok := invites.created["csv@club.edu"]; !ok {
		t.Fatal("allowlist entry not created from CSV upload")
	}
}

func TestHandleUploadCSVMissingColumn(t *testing.T) {
	h, _, _ := newTestHandler(nil)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "members.csv")
	fw.Write([]byte("Name\nAda\n"))
	mw.Close()

	resp, err := http.Post(srv.URL+"/upload-csv", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleList(t *testing.T) {
	admin := &fakeInviteAdmin{entries: []models.AllowedEmail{
		{Email: "a@x.com"}, {Email: "b@x.com"},
	}}
	h, _, _ := newTestHandler(admin)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?page=1&limit=10")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success bool     `json:"success"`
		Data    listPage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || len(env.Data.Entries) != 2 || env.Data.TotalPages != 1 {
		t.Fatalf("envelope = %+v, want 2 entries in one page", env)
	}
}

func TestHandleDelete(t *testing.T) {
	admin := &fakeInviteAdmin{delResult: 1}
	h, _, _ := newTestHandler(admin)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	id := primitive.NewObjectID()
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/"+id.Hex(), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(admin.deleted) != 1 || admin.deleted[0] != id {
		t.Fatalf("deleted = %v, want %s", admin.deleted, id.Hex())
	}
}

func TestHandleDeleteBadID(t *testing.T) {
	h, _, _ := newTestHandler(nil)
	srv := httptest.NewServer(Routes(h))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/not-an-id", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
