package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"
)

var ErrEmptyQuestion = errors.New("empty question")

const (
	chatAnswerCacheTTL = time.Hour

	AnswerSourceRemote   = "remote"
	AnswerSourceFallback = "faq"
)

// RemoteAnswerer asks an external question-answering service. Implementations
// must honor ctx cancellation and return an error rather than an empty answer.
type RemoteAnswerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

type ChatAnswer struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}

type ChatbotUsecase interface {
	Ask(ctx context.Context, question string) (ChatAnswer, error)
}

// faqEntry backs the local fallback. Keywords are matched against the
// normalized question tokens; the entry with the most hits wins.
type faqEntry struct {
	keywords []string
	answer   string
}

var faqTable = []faqEntry{
	{
		keywords: []string{"apply", "application", "applying"},
		answer:   "Open a job's detail page and press Apply. You can track every application's status under My Applications.",
	},
	{
		keywords: []string{"status", "track", "tracking", "interview", "interviewing"},
		answer:   "Go to My Applications to see each application's current stage. Statuses move from applied to interviewing to offered; rejected and withdrawn are final.",
	},
	{
		keywords: []string{"recommendation", "recommendations", "recommended", "match", "matches"},
		answer:   "Recommendations are ranked by how closely a job's required skills overlap with the skills on your profile. Add more skills to improve your matches.",
	},
	{
		keywords: []string{"skill", "skills", "profile"},
		answer:   "You can manage your skills from the profile wizard. Mark each one as a hard or soft skill; hard skills drive job matching.",
	},
	{
		keywords: []string{"save", "saved", "bookmark", "bookmarks"},
		answer:   "Press the bookmark icon on any job to save it. Saved jobs live under Saved Jobs and can be removed at any time.",
	},
	{
		keywords: []string{"resume", "cv", "insight", "insights", "analysis"},
		answer:   "The resume insights page compares your skills against what active job postings ask for and highlights the skills most worth adding.",
	},
	{
		keywords: []string{"password", "login", "signin", "account", "register", "signup"},
		answer:   "Sign in with the email and password you registered with. If your session expires, logging in again issues fresh tokens.",
	},
	{
		keywords: []string{"company", "companies", "employer"},
		answer:   "Browse the company directory to see employers and their open positions. Each company page lists its currently active jobs.",
	},
}

const faqDefaultAnswer = "I couldn't find an answer for that. Try asking about applications, recommendations, saved jobs, or your profile."

type Chatbot struct {
	remote RemoteAnswerer
	cache  Cache
	logger *log.Logger
}

func NewChatbotUsecase(remote RemoteAnswerer, cache Cache, logger *log.Logger) *Chatbot {
	return &Chatbot{remote: remote, cache: cache, logger: logger}
}

func (u *Chatbot) Ask(ctx context.Context, question string) (ChatAnswer, error) {
	normalized := normalizeQuestion(question)
	if normalized == "" {
		return ChatAnswer{}, ErrEmptyQuestion
	}

	key := chatAnswerCacheKey(normalized)
	if u.cache != nil {
		var cached ChatAnswer
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	answer := u.resolve(ctx, question, normalized)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, answer, chatAnswerCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("chatbot | cache set failed key=%s err=%v", key, err)
		}
	}
	return answer, nil
}

func (u *Chatbot) resolve(ctx context.Context, question, normalized string) ChatAnswer {
	if u.remote != nil {
		remote, err := u.remote.Ask(ctx, question)
		if err == nil && strings.TrimSpace(remote) != "" {
			return ChatAnswer{Answer: strings.TrimSpace(remote), Source: AnswerSourceRemote}
		}
		if err != nil && u.logger != nil {
			u.logger.Printf("chatbot | remote failed, using fallback err=%v", err)
		}
	}
	return ChatAnswer{Answer: fallbackAnswer(normalized), Source: AnswerSourceFallback}
}

func fallbackAnswer(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return faqDefaultAnswer
	}

	present := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		present[t] = struct{}{}
	}

	best := -1
	bestScore := 0
	for i, entry := range faqTable {
		score := 0
		for _, kw := range entry.keywords {
			if _, ok := present[kw]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 {
		return faqDefaultAnswer
	}
	return faqTable[best].answer
}

// normalizeQuestion lowercases and strips punctuation so that cache keys and
// keyword matching are insensitive to phrasing noise.
func normalizeQuestion(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	var b strings.Builder
	b.Grow(len(q))
	lastSpace := false
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func chatAnswerCacheKey(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return "chat:answer:" + hex.EncodeToString(sum[:8])
}
