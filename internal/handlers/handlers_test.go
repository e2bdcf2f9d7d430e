package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"alfredoptarigan/job-assistant/internal/models"
	"alfredoptarigan/job-assistant/internal/services"
	"alfredoptarigan/job-assistant/internal/web"
)

type fakeFeedback struct {
	calls    int
	resume   string
	jobDesc  string
	response string
}

func (f *fakeFeedback) GenerateFeedback(_ context.Context, resume, jobDescription string) string {
	f.calls++
	f.resume = resume
	f.jobDesc = jobDescription
	return f.response
}

type fakeCounter struct {
	calls int
	value string
}

func (f *fakeCounter) Increment(context.Context) string {
	f.calls++
	return f.value
}

type fakeParser struct {
	text string
	err  error
}

func (f *fakeParser) ExtractText(string, []byte) (string, error) {
	return f.text, f.err
}

type testApp struct {
	app      *fiber.App
	feedback *fakeFeedback
	counter  *fakeCounter
	parser   *fakeParser
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	ta := &testApp{
		feedback: &fakeFeedback{response: "**Overall Match Score:** 90%"},
		counter:  &fakeCounter{value: "8"},
		parser:   &fakeParser{text: "Extracted resume"},
	}

	tracker := NewVisitorTracker(session.New(session.Config{KeyGenerator: uuid.NewString}), ta.counter)
	extract := NewExtractHandler(ta.parser, 1024)

	ta.app = fiber.New()
	RegisterRoutes(ta.app, Handlers{
		Page:     NewPageHandler(renderer, ta.feedback, extract, tracker, web.NewSidebar("about")),
		Analyze:  NewAnalyzeHandler(ta.feedback),
		Visitors: NewVisitorHandler(tracker),
		Extract:  extract,
	})

	return ta
}

func (ta *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	return resp, string(body)
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, target, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	fw, err := mw.CreateFormFile(resumeFileField, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeRejectsEmptyFields(t *testing.T) {
	ta := newTestApp(t)

	for _, body := range []map[string]string{
		{"resume": "", "job_description": "jd"},
		{"resume": "resume", "job_description": ""},
		{},
	} {
		resp, out := ta.do(t, jsonRequest(t, http.MethodPost, "/api/v1/analyze", body))
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		if !strings.Contains(out, missingInputMessage) {
			t.Fatalf("expected validation message, got %s", out)
		}
	}

	if ta.feedback.calls != 0 {
		t.Fatalf("expected no remote call, got %d", ta.feedback.calls)
	}
}

func TestAnalyzeSendsWhitespaceOnlyFields(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, jsonRequest(t, http.MethodPost, "/api/v1/analyze", map[string]string{
		"resume":          "   ",
		"job_description": "jd",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, out)
	}
	if ta.feedback.calls != 1 || ta.feedback.resume != "   " {
		t.Fatalf("expected one remote call with the raw text, got %+v", ta.feedback)
	}
}

func TestAnalyzeReturnsFeedback(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, jsonRequest(t, http.MethodPost, "/api/v1/analyze", map[string]string{
		"resume":          "Go developer",
		"job_description": "Backend engineer",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, out)
	}

	var parsed struct {
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Feedback != "**Overall Match Score:** 90%" {
		t.Fatalf("unexpected feedback %q", parsed.Feedback)
	}
	if ta.feedback.calls != 1 || ta.feedback.resume != "Go developer" || ta.feedback.jobDesc != "Backend engineer" {
		t.Fatalf("unexpected feedback call %+v", ta.feedback)
	}
}

func TestAnalyzeErrorStringIsNotDistinguished(t *testing.T) {
	ta := newTestApp(t)
	ta.feedback.response = "An error occurred: quota exceeded"

	resp, out := ta.do(t, jsonRequest(t, http.MethodPost, "/api/v1/analyze", map[string]string{
		"resume":          "r",
		"job_description": "j",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(out, "An error occurred: quota exceeded") {
		t.Fatalf("expected error string in feedback, got %s", out)
	}
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := ta.do(t, req)

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPageSubmitWarnsOnMissingInput(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, formRequest("/", url.Values{"resume": {"my resume"}}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(out, missingInputMessage) {
		t.Fatalf("expected warning on page")
	}
	if !strings.Contains(out, "my resume") {
		t.Fatalf("expected resume text to be kept")
	}
	if ta.feedback.calls != 0 {
		t.Fatalf("expected no remote call")
	}
}

func TestPageSubmitSendsWhitespaceOnlyField(t *testing.T) {
	ta := newTestApp(t)

	_, out := ta.do(t, formRequest("/", url.Values{
		"resume":          {"   "},
		"job_description": {"jd"},
	}))
	if strings.Contains(out, missingInputMessage) {
		t.Fatalf("whitespace-only text must not trigger the warning")
	}
	if ta.feedback.calls != 1 {
		t.Fatalf("expected one remote call, got %d", ta.feedback.calls)
	}
}

func TestPageSubmitRendersMarkdownFeedback(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, formRequest("/", url.Values{
		"resume":          {"my resume"},
		"job_description": {"the job"},
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(out, "<strong>Overall Match Score:</strong> 90%") {
		t.Fatalf("expected rendered markdown, got %s", out)
	}
	if ta.feedback.calls != 1 {
		t.Fatalf("expected one remote call, got %d", ta.feedback.calls)
	}
}

func TestVisitorCounterRunsOncePerSession(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/visitors", nil))
	if !strings.Contains(out, `"visitors":"8"`) {
		t.Fatalf("unexpected body %s", out)
	}

	var sessionCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			sessionCookie = ck
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected session cookie")
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie.Name, Value: sessionCookie.Value})
		_, page := ta.do(t, req)
		if !strings.Contains(page, ">8<") {
			t.Fatalf("expected stored visitor value on page")
		}
	}

	if ta.counter.calls != 1 {
		t.Fatalf("expected one counter run for the session, got %d", ta.counter.calls)
	}

	ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if ta.counter.calls != 2 {
		t.Fatalf("expected a new session to run the counter, got %d", ta.counter.calls)
	}
}

func TestVisitorsUnavailableSentinel(t *testing.T) {
	ta := newTestApp(t)
	ta.counter.value = services.VisitorsUnavailable

	_, out := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/visitors", nil))

	var parsed models.VisitorsResponse
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Visitors != services.VisitorsUnavailable {
		t.Fatalf("unexpected visitors %q", parsed.Visitors)
	}
}

func TestExtractAPI(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, multipartRequest(t, "/api/v1/extract", "resume.txt", "hello", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, out)
	}
	if !strings.Contains(out, `"text":"Extracted resume"`) || !strings.Contains(out, `"filename":"resume.txt"`) {
		t.Fatalf("unexpected body %s", out)
	}
}

func TestExtractAPIRejectsLargeFile(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, multipartRequest(t, "/api/v1/extract", "resume.txt", strings.Repeat("a", 2048), nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(out, "too large") {
		t.Fatalf("unexpected body %s", out)
	}
}

func TestPageExtractPrefillsResume(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, multipartRequest(t, "/extract", "resume.pdf", "%PDF", map[string]string{
		"resume":          "typed resume",
		"job_description": "typed job description",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(out, "Extracted resume") || !strings.Contains(out, "typed job description") {
		t.Fatalf("expected prefilled text areas")
	}
	if strings.Contains(out, "typed resume") {
		t.Fatalf("expected the resume text area to be replaced")
	}
	if ta.feedback.calls != 0 {
		t.Fatalf("extract must not request feedback")
	}
}

func TestPageExtractErrorKeepsTypedText(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, multipartRequest(t, "/extract", "resume.txt", strings.Repeat("a", 2048), map[string]string{
		"resume":          "typed resume",
		"job_description": "typed job description",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(out, "too large") {
		t.Fatalf("expected warning on page, got %s", out)
	}
	if !strings.Contains(out, "typed resume") || !strings.Contains(out, "typed job description") {
		t.Fatalf("expected both text areas to be kept")
	}
}

func TestPageLoadButtonPostsTextAreas(t *testing.T) {
	ta := newTestApp(t)

	_, out := ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Count(out, "<form") != 1 {
		t.Fatalf("expected the upload and text areas to share one form")
	}
	if !strings.Contains(out, `enctype="multipart/form-data"`) || !strings.Contains(out, `formaction="/extract"`) {
		t.Fatalf("expected a multipart form with a Load button posting to /extract")
	}
	if strings.Contains(out, `type="hidden"`) {
		t.Fatalf("job description must come from the text area, not a hidden copy")
	}
}
