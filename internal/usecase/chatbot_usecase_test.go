package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type mockRemoteAnswerer struct {
	answer string
	err    error
	calls  int
}

func (m *mockRemoteAnswerer) Ask(ctx context.Context, question string) (string, error) {
	m.calls++
	return m.answer, m.err
}

type mockCache struct {
	store map[string][]byte
	sets  int
}

func (m *mockCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if m.store == nil {
		return false, nil
	}
	raw, ok := m.store[key]
	if !ok {
		return false, nil
	}
	ca, ok := out.(*ChatAnswer)
	if !ok {
		return false, nil
	}
	ca.Answer = string(raw)
	ca.Source = AnswerSourceRemote
	return true, nil
}

func (m *mockCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.store == nil {
		m.store = map[string][]byte{}
	}
	m.sets++
	if ca, ok := value.(ChatAnswer); ok {
		m.store[key] = []byte(ca.Answer)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error { return nil }

func TestChatbotAsk_RemoteWins(t *testing.T) {
	remote := &mockRemoteAnswerer{answer: "You can update your profile from settings."}
	u := NewChatbotUsecase(remote, nil, nil)

	got, err := u.Ask(context.Background(), "How do I update my profile?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got.Source != AnswerSourceRemote {
		t.Fatalf("source = %q, want %q", got.Source, AnswerSourceRemote)
	}
	if got.Answer != remote.answer {
		t.Fatalf("answer = %q", got.Answer)
	}
}

func TestChatbotAsk_FallbackOnRemoteError(t *testing.T) {
	remote := &mockRemoteAnswerer{err: errors.New("connection refused")}
	u := NewChatbotUsecase(remote, nil, nil)

	got, err := u.Ask(context.Background(), "How do I apply for a job?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got.Source != AnswerSourceFallback {
		t.Fatalf("source = %q, want %q", got.Source, AnswerSourceFallback)
	}
	if !strings.Contains(strings.ToLower(got.Answer), "apply") {
		t.Fatalf("fallback answer not about applying: %q", got.Answer)
	}
}

func TestChatbotAsk_FallbackPicksBestEntry(t *testing.T) {
	u := NewChatbotUsecase(nil, nil, nil)

	got, err := u.Ask(context.Background(), "where are my saved bookmarks?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(strings.ToLower(got.Answer), "saved jobs") {
		t.Fatalf("expected bookmarks answer, got %q", got.Answer)
	}
}

func TestChatbotAsk_FallbackDefaultAnswer(t *testing.T) {
	u := NewChatbotUsecase(nil, nil, nil)

	got, err := u.Ask(context.Background(), "what is the meaning of life")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got.Answer != faqDefaultAnswer {
		t.Fatalf("answer = %q, want default", got.Answer)
	}
}

func TestChatbotAsk_EmptyQuestion(t *testing.T) {
	u := NewChatbotUsecase(nil, nil, nil)

	if _, err := u.Ask(context.Background(), "   ?!  "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
}

func TestChatbotAsk_CacheHitSkipsRemote(t *testing.T) {
	remote := &mockRemoteAnswerer{answer: "fresh answer"}
	cache := &mockCache{}
	u := NewChatbotUsecase(remote, cache, nil)

	first, err := u.Ask(context.Background(), "How do I apply?")
	if err != nil {
		t.Fatalf("first Ask: %v", err)
	}
	if remote.calls != 1 || cache.sets != 1 {
		t.Fatalf("calls = %d, sets = %d", remote.calls, cache.sets)
	}

	// Punctuation and casing differences must hit the same cache entry.
	second, err := u.Ask(context.Background(), "how do i APPLY??")
	if err != nil {
		t.Fatalf("second Ask: %v", err)
	}
	if remote.calls != 1 {
		t.Fatalf("remote called %d times, want 1", remote.calls)
	}
	if second.Answer != first.Answer {
		t.Fatalf("cached answer mismatch: %q vs %q", second.Answer, first.Answer)
	}
}

func TestNormalizeQuestion(t *testing.T) {
	cases := map[string]string{
		"  How do I Apply?!  ": "how do i apply",
		"STATUS-check":         "status check",
		"":                     "",
		"???":                  "",
	}
	for in, want := range cases {
		if got := normalizeQuestion(in); got != want {
			t.Errorf("normalizeQuestion(%q) = %q, want %q", in, got, want)
		}
	}
}
