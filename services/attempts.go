// ABOUTME: Attempt flow state machine for quiz participation
// ABOUTME: Sessions live in the TTL cache; abandoned attempts expire on their own

package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quiz-gateway/cache"
	"github.com/quizforge/quiz-gateway/models"
)

// DefaultPassThreshold applies when a quiz carries no scorePassage.
const DefaultPassThreshold = 50

var (
	ErrSessionNotFound = errors.New("attempt session not found")
	ErrQuizInactive    = errors.New("quiz inactive")
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrUnanswered      = errors.New("current question unanswered")
)

// AttemptFlow drives a participant through an attempt: join by code, answer
// question by question, then submit the flattened selections in one call.
type AttemptFlow struct {
	quiz     *QuizClient
	sessions *cache.Cache
	ttl      time.Duration
}

func NewAttemptFlow(quiz *QuizClient, sessions *cache.Cache, ttl time.Duration) *AttemptFlow {
	return &AttemptFlow{
		quiz:     quiz,
		sessions: sessions,
		ttl:      ttl,
	}
}

// AttemptSession holds one in-progress attempt. All mutation goes through the
// flow methods, which take the session lock.
type AttemptSession struct {
	ID          string
	QuizID      int
	QuizTitle   string
	Threshold   *int
	Participant models.Participant
	Questions   []models.PublicQuestion

	mu      sync.Mutex
	index   int
	answers map[int][]int // question id -> selected answer ids
}

// AttemptView is the participant-facing snapshot of a session: the current
// question and where it sits in the quiz.
type AttemptView struct {
	SessionID      string                 `json:"sessionId"`
	QuizTitle      string                 `json:"quizTitle"`
	QuestionIndex  int                    `json:"questionIndex"`
	TotalQuestions int                    `json:"totalQuestions"`
	Question       *models.PublicQuestion `json:"question"`
	Selected       []int                  `json:"selected"`
	CanGoBack      bool                   `json:"canGoBack"`
	IsLast         bool                   `json:"isLast"`
}

// NextOutcome is either a view of the next question or, after the last one,
// the scored result.
type NextOutcome struct {
	Done     bool                  `json:"done"`
	View     *AttemptView          `json:"view,omitempty"`
	Result   *models.AttemptResult `json:"result,omitempty"`
	Redirect string                `json:"redirect,omitempty"`
}

func sessionKey(id string) string {
	return "attempt:" + id
}

// Start joins a quiz by access code and creates a session on the first
// question. Codes are matched case-insensitively.
func (f *AttemptFlow) Start(ctx context.Context, req models.JoinRequest) (*AttemptView, error) {
	code := strings.ToUpper(strings.TrimSpace(req.AccessCode))

	quiz, err := f.quiz.QuizByCode(ctx, "", code)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, ErrQuizInactive
	}

	public, err := f.quiz.PublicQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	if len(public.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]models.PublicQuestion, len(public.Questions))
	copy(questions, public.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].NumeroOrdre < questions[j].NumeroOrdre
	})

	session := &AttemptSession{
		ID:          uuid.NewString(),
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		Threshold:   public.ScorePassage,
		Participant: req.Participant,
		Questions:   questions,
		answers:     make(map[int][]int),
	}
	if session.Threshold == nil {
		session.Threshold = quiz.ScorePassage
	}

	f.sessions.SetWithTTL(sessionKey(session.ID), session, f.ttl)
	slog.Info("Attempt started",
		"session_id", session.ID,
		"quiz_id", quiz.ID,
		"questions", len(questions))

	return session.view(), nil
}

// Get returns the current view of a session.
func (f *AttemptFlow) Get(sessionID string) (*AttemptView, error) {
	session, err := f.load(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.viewLocked(), nil
}

// Select records an answer choice on the current question. Single-choice
// questions replace the previous selection; multiple-choice questions toggle
// the answer in and out of the set.
func (f *AttemptFlow) Select(sessionID string, answerID int) (*AttemptView, error) {
	session, err := f.load(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	q := session.Questions[session.index]
	selected := session.answers[q.ID]

	if q.IsMultipleChoice {
		if i := indexOf(selected, answerID); i >= 0 {
			selected = append(selected[:i], selected[i+1:]...)
		} else {
			selected = append(selected, answerID)
		}
	} else {
		selected = []int{answerID}
	}
	session.answers[q.ID] = selected

	return session.viewLocked(), nil
}

// Back moves to the previous question. Selections already made are kept.
func (f *AttemptFlow) Back(sessionID string) (*AttemptView, error) {
	session, err := f.load(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.index > 0 {
		session.index--
	}
	return session.viewLocked(), nil
}

// Next advances past the current question, or submits the attempt when the
// current question is the last one. The current question must have at least
// one selection either way.
func (f *AttemptFlow) Next(ctx context.Context, sessionID string) (*NextOutcome, error) {
	session, err := f.load(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	q := session.Questions[session.index]
	if len(session.answers[q.ID]) == 0 {
		return nil, ErrUnanswered
	}

	if session.index < len(session.Questions)-1 {
		session.index++
		return &NextOutcome{View: session.viewLocked()}, nil
	}

	result, err := f.submitLocked(ctx, session)
	if err != nil {
		// The session stays alive so the participant can retry.
		return nil, err
	}

	f.sessions.Clear(sessionKey(session.ID))
	slog.Info("Attempt submitted",
		"session_id", session.ID,
		"quiz_id", session.QuizID,
		"percentage", result.Percentage,
		"passed", result.Passed)

	return &NextOutcome{Done: true, Result: result, Redirect: "/quiz-results"}, nil
}

// submitLocked flattens the selections into {questionId, reponseId} pairs in
// question order and posts them upstream.
func (f *AttemptFlow) submitLocked(ctx context.Context, session *AttemptSession) (*models.AttemptResult, error) {
	var pairs []models.SubmittedAnswer
	for _, q := range session.Questions {
		for _, answerID := range session.answers[q.ID] {
			pairs = append(pairs, models.SubmittedAnswer{QuestionID: q.ID, ReponseID: answerID})
		}
	}

	req := models.SubmitRequest{
		PrenomParticipant: session.Participant.FirstName,
		NomParticipant:    session.Participant.LastName,
		Reponses:          pairs,
	}

	outcome, err := f.quiz.SubmitAttempt(ctx, session.QuizID, req)
	if err != nil {
		return nil, err
	}

	total := outcome.TotalQuestions
	if total == 0 {
		total = len(session.Questions)
	}

	percentage := outcome.Score
	if !outcome.HasScore {
		percentage = percentOf(outcome.BonnesReponses, total)
	}

	threshold := DefaultPassThreshold
	if session.Threshold != nil {
		threshold = *session.Threshold
	}

	return &models.AttemptResult{
		Score:          outcome.BonnesReponses,
		TotalQuestions: total,
		Percentage:     percentage,
		Passed:         percentage >= threshold,
		TentativeID:    outcome.TentativeID,
	}, nil
}

func (f *AttemptFlow) load(sessionID string) (*AttemptSession, error) {
	val, ok := f.sessions.Get(sessionKey(sessionID))
	if !ok {
		return nil, ErrSessionNotFound
	}
	session, ok := val.(*AttemptSession)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *AttemptSession) view() *AttemptView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *AttemptSession) viewLocked() *AttemptView {
	q := s.Questions[s.index]
	selected := append([]int(nil), s.answers[q.ID]...)
	return &AttemptView{
		SessionID:      s.ID,
		QuizTitle:      s.QuizTitle,
		QuestionIndex:  s.index,
		TotalQuestions: len(s.Questions),
		Question:       &q,
		Selected:       selected,
		CanGoBack:      s.index > 0,
		IsLast:         s.index == len(s.Questions)-1,
	}
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// percentOf rounds to the nearest whole percent. A zero total never divides.
func percentOf(correct, total int) int {
	if total < 1 {
		total = 1
	}
	return int(float64(correct)/float64(total)*100 + 0.5)
}
