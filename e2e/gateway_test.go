// ABOUTME: End-to-end scenarios over real HTTP: login, guard, attempt flow, rate limit
// ABOUTME: The gateway runs with its full middleware chains against a mock upstream

package e2e

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

var testUsers = []upstreamUser{
	{Email: "a@b.com", Password: "secret1", Token: "admin-token", Roles: []string{"ROLE_ADMIN"}},
	{Email: "s@b.com", Password: "secret2", Token: "student-token", Roles: []string{"ROLE_USER"}},
}

func TestLoginThenAdminArea(t *testing.T) {
	upstream := newUpstream(t, testUsers)
	defer upstream.Close()
	gateway := newGateway(t, upstream.URL, 0)

	resp, err := http.Post(gateway.URL+"/api/v1/login", "application/json",
		strings.NewReader(`{"email":"a@b.com","password":"secret1"}`))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	cookie := tokenCookie(resp)
	if cookie == nil {
		t.Fatal("expected the token cookie")
	}

	req, _ := http.NewRequest(http.MethodGet, gateway.URL+"/api/v1/admin/quizzes", nil)
	req.AddCookie(cookie)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("admin request failed: %v", err)
	}
	defer listResp.Body.Close()

	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from admin list, got %d", listResp.StatusCode)
	}
	var quizzes []map[string]interface{}
	if err := json.NewDecoder(listResp.Body).Decode(&quizzes); err != nil {
		t.Fatalf("failed to decode quiz list: %v", err)
	}
	if len(quizzes) != 1 {
		t.Errorf("expected 1 quiz, got %d", len(quizzes))
	}
}

func TestStudentDeniedOnAdminArea(t *testing.T) {
	upstream := newUpstream(t, testUsers)
	defer upstream.Close()
	gateway := newGateway(t, upstream.URL, 0)

	req, _ := http.NewRequest(http.MethodGet, gateway.URL+"/api/v1/admin/quizzes", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: "student-token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	var body struct {
		Redirect string `json:"redirect"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Redirect != "/student" {
		t.Errorf("expected redirect to /student, got %q", body.Redirect)
	}
}

func TestNoCookieGetsLoginEnvelope(t *testing.T) {
	upstream := newUpstream(t, testUsers)
	defer upstream.Close()
	gateway := newGateway(t, upstream.URL, 0)

	resp, err := http.Get(gateway.URL + "/api/v1/student/history")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	var body struct {
		Redirect string `json:"redirect"`
		From     string `json:"from"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Redirect != "/login" {
		t.Errorf("expected redirect to /login, got %q", body.Redirect)
	}
	if body.From != "/api/v1/student/history" {
		t.Errorf("expected original path preserved, got %q", body.From)
	}
}

func TestRevokedTokenClearsCookie(t *testing.T) {
	upstream := newUpstream(t, testUsers)
	defer upstream.Close()
	gateway := newGateway(t, upstream.URL, 0)

	req, _ := http.NewRequest(http.MethodGet, gateway.URL+"/api/v1/student/history", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: "revoked-token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	cookie := tokenCookie(resp)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Error("expected the stale cookie to be cleared")
	}
}

func TestAttemptFlowOverHTTP(t *testing.T) {
	upstream := newUpstream(t, testUsers)
	defer upstream.Close()
	gateway := newGateway(t, upstream.URL, 0)

	// Join with an access code; no account required.
	joinResp, err := http.Post(gateway.URL+"/api/v1/attempts", "application/json",
		strings.NewReader(`{"firstName":"Alice","lastName":"Martin","accessCode":"abc123"}`))
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	defer joinResp.Body.Close()
	if joinResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", joinResp.StatusCode)
	}

	var view struct {
		SessionID string `json:"sessionId"`
		IsLast    bool   `json:"isLast"`
	}
	if err := json.NewDecoder(joinResp.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if view.SessionID == "" || !view.IsLast {
		t.Fatalf("unexpected view: %+v", view)
	}

	// Select an answer, then submit via next.
	selectResp, err := http.Post(gateway.URL+"/api/v1/attempts/"+view.SessionID+"/answers",
		"application/json", strings.NewReader(`{"reponseId":11}`))
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	selectResp.Body.Close()
	if selectResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on select, got %d", selectResp.StatusCode)
	}

	nextResp, err := http.Post(gateway.URL+"/api/v1/attempts/"+view.SessionID+"/next",
		"application/json", nil)
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	defer nextResp.Body.Close()
	if nextResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on submit, got %d", nextResp.StatusCode)
	}

	var outcome struct {
		Done   bool `json:"done"`
		Result struct {
			Percentage  int  `json:"percentage"`
			Passed      bool `json:"passed"`
			TentativeID int  `json:"tentativeId"`
		} `json:"result"`
	}
	if err := json.NewDecoder(nextResp.Body).Decode(&outcome); err != nil {
		t.Fatalf("failed to decode outcome: %v", err)
	}
	if !outcome.Done || outcome.Result.TentativeID != 42 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Result.Percentage != 100 || !outcome.Result.Passed {
		t.Errorf("expected a passing 100%%, got %+v", outcome.Result)
	}
}

func TestLoginRateLimit(t *testing.T) {
	upstream := newUpstream(t, testUsers)
	defer upstream.Close()
	gateway := newGateway(t, upstream.URL, 2)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Post(gateway.URL+"/api/v1/login", "application/json",
			strings.NewReader(`{"email":"a@b.com","password":"nope99"}`))
		if err != nil {
			t.Fatalf("request %d failed: %v", i+1, err)
		}
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	if statuses[0] != http.StatusUnauthorized || statuses[1] != http.StatusUnauthorized {
		t.Errorf("expected first two attempts to reach the upstream, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("expected third attempt rate limited, got %v", statuses)
	}
}
