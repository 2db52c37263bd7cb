package endpoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/insightd/internal/insight"
	"github.com/skillsenselab/insightd/internal/logger"
	"github.com/skillsenselab/insightd/internal/service"
	storagetest "github.com/skillsenselab/insightd/internal/storage/testutil"
	"github.com/skillsenselab/insightd/internal/transcription"
	transcriptiontest "github.com/skillsenselab/insightd/internal/transcription/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerFixture struct {
	provider *transcriptiontest.StubProvider
	store    *storagetest.MemoryStorage
	router   *gin.Engine
}

func newHandlerFixture() *handlerFixture {
	provider := transcriptiontest.NewStubProvider()
	store := storagetest.NewMemoryStorage()
	log := logger.NewDefault("test")
	orch := service.NewOrchestrator(provider, store, log)
	svc := service.NewInsightService(store, orch, insight.NewExactExtractor(), insight.NewExactExtractor(), log)

	router := gin.New()
	router.POST("/insights", Insights(svc, insight.StrategyExact))
	return &handlerFixture{provider: provider, store: store, router: router}
}

func (f *handlerFixture) post(t *testing.T, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %s", w.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

const validBody = `{"interaction_url":"s3://calls/rec.mp3","trackers":["pricing"]}`

func TestInsightsRejectsMalformedJSON(t *testing.T) {
	f := newHandlerFixture()
	w := f.post(t, `{"interaction_url":`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInsightsRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"no url":         `{"trackers":["pricing"]}`,
		"no trackers":    `{"interaction_url":"s3://calls/rec.mp3"}`,
		"empty trackers": `{"interaction_url":"s3://calls/rec.mp3","trackers":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			f := newHandlerFixture()
			w := f.post(t, body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestInsightsRejectsUnknownStrategy(t *testing.T) {
	f := newHandlerFixture()
	w := f.post(t, validBody, map[string]string{StrategyHeader: "fuzzy"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInsightsFirstSubmissionAccepted(t *testing.T) {
	f := newHandlerFixture()
	f.store.Put("calls", "rec.mp3", "audio/mpeg", []byte("mp3-bytes"))

	w := f.post(t, validBody, nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["transcription_status"] != "STARTED" {
		t.Errorf("transcription_status = %v, want STARTED", body["transcription_status"])
	}
	if body["job_name"] != service.DeriveJobID("calls", "rec.mp3") {
		t.Errorf("job_name = %v, want derived id", body["job_name"])
	}
	if len(f.provider.StartCalls) != 1 {
		t.Errorf("StartJob calls = %d, want 1", len(f.provider.StartCalls))
	}
}

func TestInsightsPendingJobAccepted(t *testing.T) {
	f := newHandlerFixture()
	f.store.Put("calls", "rec.mp3", "audio/mpeg", []byte("mp3-bytes"))
	jobID := service.DeriveJobID("calls", "rec.mp3")
	f.provider.Jobs[jobID] = &transcription.Job{ID: jobID, Status: transcription.StatusInProgress}

	w := f.post(t, validBody, nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["transcription_status"] != "PENDING" {
		t.Errorf("transcription_status = %v, want PENDING", body["transcription_status"])
	}
	if _, present := body["job_name"]; present {
		t.Error("job_name must only appear on first submission")
	}
}

func TestInsightsCompletedJobReturnsInsights(t *testing.T) {
	f := newHandlerFixture()
	f.store.Put("calls", "rec.mp3", "audio/mpeg", []byte("mp3-bytes"))
	jobID := service.DeriveJobID("calls", "rec.mp3")
	f.provider.Jobs[jobID] = &transcription.Job{ID: jobID, Status: transcription.StatusCompleted}
	f.store.Put("calls", jobID+".json", "application/json",
		[]byte(`{"results":{"transcripts":[{"transcript":"I want to discuss pricing options."}]}}`))

	w := f.post(t, validBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Insights []insight.Insight `json:"insights"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(body.Insights) != 1 {
		t.Fatalf("insights = %v, want one", body.Insights)
	}
	got := body.Insights[0]
	if got.SentenceIndex != 0 || got.StartWordIndex != 4 || got.EndWordIndex != 5 {
		t.Errorf("span = (%d, %d, %d), want (0, 4, 5)",
			got.SentenceIndex, got.StartWordIndex, got.EndWordIndex)
	}
	if got.SimilarityScore != nil {
		t.Error("similarity_score must be absent for exact matches")
	}
}

func TestInsightsCompletedNoMatchesReturnsEmptyArray(t *testing.T) {
	f := newHandlerFixture()
	f.store.Put("calls", "rec.mp3", "audio/mpeg", []byte("mp3-bytes"))
	jobID := service.DeriveJobID("calls", "rec.mp3")
	f.provider.Jobs[jobID] = &transcription.Job{ID: jobID, Status: transcription.StatusCompleted}
	f.store.Put("calls", jobID+".json", "application/json",
		[]byte(`{"results":{"transcripts":[{"transcript":"Nothing here."}]}}`))

	w := f.post(t, validBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"insights":[]`) {
		t.Errorf("body = %s, want empty insights array, not null", w.Body.String())
	}
}

func TestInsightsFailedJobIsBadRequest(t *testing.T) {
	f := newHandlerFixture()
	f.store.Put("calls", "rec.mp3", "audio/mpeg", []byte("mp3-bytes"))
	jobID := service.DeriveJobID("calls", "rec.mp3")
	f.provider.Jobs[jobID] = &transcription.Job{ID: jobID, Status: transcription.StatusFailed}

	w := f.post(t, validBody, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	if code := errorCode(t, w); code != "TRANSCRIPTION_JOB_FAILED" {
		t.Errorf("error code = %q, want TRANSCRIPTION_JOB_FAILED", code)
	}
}

func TestInsightsMissingObjectIsBadRequest(t *testing.T) {
	f := newHandlerFixture()

	w := f.post(t, validBody, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	if code := errorCode(t, w); code != "STORAGE_OBJECT_ERROR" {
		t.Errorf("error code = %q, want STORAGE_OBJECT_ERROR", code)
	}
}

func TestInsightsExplicitExactStrategyHeader(t *testing.T) {
	f := newHandlerFixture()
	f.store.Put("calls", "rec.mp3", "audio/mpeg", []byte("mp3-bytes"))

	w := f.post(t, validBody, map[string]string{StrategyHeader: "exact"})
	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
}
