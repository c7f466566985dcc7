package chat

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jobportal-labs/ragchat/internal/domain"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/filter"
	"github.com/jobportal-labs/ragchat/internal/domain/chat/request"
)

// --- Mocks ---

// callLog records upstream invocations in order.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) { l.calls = append(l.calls, name) }

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

type mockEmbedder struct {
	log *callLog
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.log.record("embed")
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 7}, nil
}

type mockRetriever struct {
	log      *callLog
	snippets []domain.Snippet
	err      error
	lastVec  []float32
	lastTopK int
}

func (m *mockRetriever) Search(
	_ context.Context, vector []float32, _ filter.Filter, limit int,
) ([]domain.Snippet, error) {
	m.log.record("search")
	m.lastVec = vector
	m.lastTopK = limit
	return m.snippets, m.err
}

type mockGenerator struct {
	log        *callLog
	answer     string
	err        error
	echoPrompt bool
	lastPrompt string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.log.record("generate")
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	if m.echoPrompt {
		return prompt + " " + m.answer, nil
	}
	return m.answer, nil
}

func testSnippets() []domain.Snippet {
	return []domain.Snippet{
		{Text: "Frontend Engineer at Acme. Location: Dhaka.", Metadata: map[string]any{"location": "Dhaka"}, Score: 0.93},
		{Text: "React Developer at Beta. Location: Dhaka.", Metadata: map[string]any{"location": "Dhaka"}, Score: 0.81},
	}
}

func makeRequest(t *testing.T, question string, topK int) *request.Request {
	t.Helper()
	r, err := request.New(question, topK, filter.Filter{})
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

func newTestService(embed *mockEmbedder, repo *mockRetriever, gen Generator) *Service {
	return New(embed, repo, gen, nil, zap.NewNop())
}

// --- Tests ---

func TestQuery_HappyPath(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1, 0.2}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, answer: "Acme is hiring frontend engineers in Dhaka."}
	svc := newTestService(embed, repo, gen)

	reply, err := svc.Query(context.Background(), makeRequest(t, "frontend jobs in Dhaka", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Answer != "Acme is hiring frontend engineers in Dhaka." {
		t.Errorf("unexpected answer: %q", reply.Answer)
	}
	if len(reply.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(reply.Sources))
	}
	if reply.Degraded {
		t.Error("expected a non-degraded reply")
	}
	if reply.Sources[0].Score != 0.93 {
		t.Errorf("source order changed: %v", reply.Sources)
	}
	if repo.lastTopK != 3 {
		t.Errorf("topK = %d, want 3", repo.lastTopK)
	}
	if len(repo.lastVec) != 2 {
		t.Errorf("search did not receive the embedding: %v", repo.lastVec)
	}
}

func TestQuery_CallsEachUpstreamOnceInOrder(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, answer: "ok"}
	svc := newTestService(embed, repo, gen)

	if _, err := svc.Query(context.Background(), makeRequest(t, "any question", 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"embed", "search", "generate"}
	if !reflect.DeepEqual(log.calls, want) {
		t.Errorf("call order = %v, want %v", log.calls, want)
	}
}

func TestQuery_EmbedFailureIsPipelineError(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, err: errors.New("provider down")}
	repo := &mockRetriever{log: log}
	gen := &mockGenerator{log: log}
	svc := newTestService(embed, repo, gen)

	_, err := svc.Query(context.Background(), makeRequest(t, "question", 5))
	if err == nil {
		t.Fatal("expected error")
	}
	if log.count("search") != 0 || log.count("generate") != 0 {
		t.Errorf("downstream calls made after embed failure: %v", log.calls)
	}
}

func TestQuery_SearchFailureIsPipelineError(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, err: fmt.Errorf("%w: index offline", domain.ErrSearchFailed)}
	gen := &mockGenerator{log: log}
	svc := newTestService(embed, repo, gen)

	_, err := svc.Query(context.Background(), makeRequest(t, "question", 5))
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Fatalf("expected ErrSearchFailed, got %v", err)
	}
	if log.count("generate") != 0 {
		t.Errorf("generation called after search failure: %v", log.calls)
	}
}

func TestQuery_ZeroResultsSkipsGeneration(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: nil}
	gen := &mockGenerator{log: log, answer: "should never appear"}
	svc := newTestService(embed, repo, gen)

	reply, err := svc.Query(context.Background(), makeRequest(t, "jobs on the moon", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Answer != FallbackAnswer {
		t.Errorf("answer = %q, want the fallback", reply.Answer)
	}
	if reply.Sources == nil || len(reply.Sources) != 0 {
		t.Errorf("expected an empty sources slice, got %#v", reply.Sources)
	}
	if log.count("generate") != 0 {
		t.Errorf("generation called for zero results: %v", log.calls)
	}
}

func TestQuery_GeneratorUnavailableDegrades(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, err: fmt.Errorf("%w: dial tcp: connection refused", domain.ErrGenerationUnavailable)}
	svc := newTestService(embed, repo, gen)

	reply, err := svc.Query(context.Background(), makeRequest(t, "question", 5))
	if err != nil {
		t.Fatalf("network failure must not fail the request: %v", err)
	}
	if reply.Answer != FallbackAnswer {
		t.Errorf("answer = %q, want the fallback", reply.Answer)
	}
	if !reply.Degraded {
		t.Error("expected a degraded reply")
	}
	if len(reply.Sources) != 2 {
		t.Errorf("sources must survive a degraded generation, got %d", len(reply.Sources))
	}
}

func TestQuery_GeneratorWrapperErrorIsFatal(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, err: errors.New("prompt exceeds model context window")}
	svc := newTestService(embed, repo, gen)

	if _, err := svc.Query(context.Background(), makeRequest(t, "question", 5)); err == nil {
		t.Fatal("expected a pipeline error for a wrapper failure")
	}
}

func TestQuery_NilGeneratorDegradesWithoutNetworkCall(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	svc := newTestService(embed, repo, nil)

	reply, err := svc.Query(context.Background(), makeRequest(t, "question", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Answer != FallbackAnswer {
		t.Errorf("answer = %q, want the fallback", reply.Answer)
	}
	if !reply.Degraded {
		t.Error("expected a degraded reply")
	}
	if log.count("generate") != 0 {
		t.Errorf("no generation call expected without credentials: %v", log.calls)
	}
}

func TestQuery_StripsEchoedPrompt(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, answer: "The portal lists two Dhaka openings.", echoPrompt: true}
	svc := newTestService(embed, repo, gen)

	reply, err := svc.Query(context.Background(), makeRequest(t, "question", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Answer != "The portal lists two Dhaka openings." {
		t.Errorf("echoed prompt not stripped: %q", reply.Answer)
	}
}

func TestQuery_EmptyCompletionDegrades(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, answer: "   "}
	svc := newTestService(embed, repo, gen)

	reply, err := svc.Query(context.Background(), makeRequest(t, "question", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Answer != FallbackAnswer {
		t.Errorf("answer = %q, want the fallback", reply.Answer)
	}
	if !reply.Degraded {
		t.Error("expected a degraded reply")
	}
}

func TestQuery_Idempotent(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1, 0.2}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, answer: "Same answer every time."}
	svc := newTestService(embed, repo, gen)

	req := makeRequest(t, "frontend jobs in Dhaka", 3)
	first, err := svc.Query(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Query(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("replies differ:\n%#v\n%#v", first, second)
	}
}

func TestQuery_GeneratorReceivesFormattedPrompt(t *testing.T) {
	log := &callLog{}
	embed := &mockEmbedder{log: log, vec: []float32{0.1}}
	repo := &mockRetriever{log: log, snippets: testSnippets()}
	gen := &mockGenerator{log: log, answer: "ok"}
	svc := newTestService(embed, repo, gen)

	if _, err := svc.Query(context.Background(), makeRequest(t, "frontend jobs in Dhaka", 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gen.lastPrompt, "1. Frontend Engineer at Acme. Location: Dhaka.") {
		t.Errorf("prompt missing first numbered snippet:\n%s", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, "Question: frontend jobs in Dhaka") {
		t.Errorf("prompt missing question:\n%s", gen.lastPrompt)
	}
	if !strings.HasSuffix(gen.lastPrompt, "Answer:") {
		t.Errorf("prompt missing answer cue:\n%s", gen.lastPrompt)
	}
}
