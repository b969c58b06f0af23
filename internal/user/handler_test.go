// AngelaMos | 2026
// handler_test.go

package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Registration is an unauthenticated route, so flags in the request body
// must never reach the persisted account. A body claiming is_admin has to
// produce a regular user.
func TestCreateHandlerIgnoresAdminFlag(t *testing.T) {
	svc, repo := newUserTestService()
	handler := NewHandler(svc)

	body := `{
		"name": "Eve Mallory",
		"email": "eve@example.com",
		"password": "secret123",
		"is_admin": true
	}`

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.IsAdmin {
		t.Error("response reports an admin account")
	}

	stored := repo.users[resp.ID]
	if stored == nil {
		t.Fatal("account was not persisted")
	}
	if stored.IsAdmin {
		t.Error("persisted account is admin; registration must not grant roles")
	}
	if stored.EmailConfirmed {
		t.Error("persisted account is confirmed; registration must not confirm emails")
	}
}

func TestCreateHandlerValidation(t *testing.T) {
	svc, _ := newUserTestService()
	handler := NewHandler(svc)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"name too short", `{"name":"ab","email":"a@b.co","password":"secret123"}`},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"secret123"}`},
		{"password too short", `{"name":"Alice","email":"a@b.co","password":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost, "/users", strings.NewReader(tt.body),
			)
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
