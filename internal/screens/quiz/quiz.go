package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/deck"
	qz "github.com/wordmap/wordmap/internal/quiz"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/store"
	"github.com/wordmap/wordmap/internal/ui/components"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

// resultSavedMsg reports persistence of a finished quiz attempt.
type resultSavedMsg struct {
	SessionID string
	Best      int
	Err       error
}

// QuizScreen runs a multiple-choice test over a deck.
type QuizScreen struct {
	deps      *deps.Deps
	deck      deck.Resolved
	session   *qz.Session
	sessionID string
	choice    components.MultiChoice
	errMsg    string

	saved   bool
	best    int
	saveErr string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. Options are forwarded to the quiz session.
func New(dp *deps.Deps, d deck.Resolved, opts ...qz.Option) *QuizScreen {
	return &QuizScreen{
		deps:    dp,
		deck:    d,
		session: qz.New(opts...),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.start(func() error {
		return s.session.Generate(s.deck.Flashcards(), s.deps.Pool(s.deck.Words))
	})
	return nil
}

func (s *QuizScreen) start(generate func() error) {
	s.errMsg = ""
	s.saved, s.saveErr, s.best = false, "", 0
	if err := generate(); err != nil {
		s.errMsg = describe(err)
		s.deps.Log().Warn("quiz generation failed", zap.Int("deck_id", s.deck.ID), zap.Error(err))
		return
	}
	s.sessionID = uuid.New().String()
	s.syncChoice()
}

func describe(err error) string {
	var ide *qz.InsufficientDistractorsError
	switch {
	case errors.Is(err, qz.ErrNoFlashcards):
		return "This deck has no cards to test."
	case errors.As(err, &ide):
		return fmt.Sprintf("Not enough different answers to build choices for %q (%d of %d).",
			ide.Prompt, ide.Available, ide.Required)
	}
	return err.Error()
}

func (s *QuizScreen) syncChoice() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex(), q.ChosenIndex())
}

func (s *QuizScreen) Title() string {
	if s.deck.Name == "" {
		return "Test"
	}
	return "Test: " + s.deck.Name
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.session.Finished():
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Enter", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "P", Description: "Pass"},
	}
	if s.session.CanAdvance() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		// A save from an attempt abandoned by retry.
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		s.saved = true
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		} else {
			s.best = msg.Best
		}
		return s, nil

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, nil
		}
		if s.session.Finished() {
			return s.handleResultsKey(msg)
		}
		return s.handleQuestionKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "1", "2", "3", "4":
		s.answer(int(key[0] - '1'))
		return s, nil
	case "enter":
		if !s.choice.Answered() || s.choice.Selected != s.choice.ChosenIndex {
			s.answer(s.choice.Selected)
			return s, nil
		}
		return s, s.advance()
	case "right", "n":
		if s.session.CanAdvance() {
			return s, s.advance()
		}
	case "p":
		_ = s.session.Skip()
		return s, s.afterMove()
	default:
		s.choice, _ = s.choice.Update(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleResultsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r":
		s.start(s.session.Retry)
	case "enter", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) answer(i int) {
	if err := s.session.Answer(i); err != nil {
		return
	}
	s.syncChoice()
}

func (s *QuizScreen) advance() tea.Cmd {
	_ = s.session.Advance()
	return s.afterMove()
}

func (s *QuizScreen) afterMove() tea.Cmd {
	if s.session.Finished() {
		return s.saveResult()
	}
	s.syncChoice()
	return nil
}

func (s *QuizScreen) saveResult() tea.Cmd {
	repo := s.deps.Results
	if repo == nil {
		return nil
	}
	sc := s.session.Score()
	res := &store.QuizResult{
		SessionID:  s.sessionID,
		DeckID:     s.deck.ID,
		DeckName:   s.deck.Name,
		Correct:    sc.CorrectCount,
		Total:      sc.Total,
		Percentage: sc.Percentage,
		FinishedAt: time.Now(),
	}
	logger := s.deps.Log()
	return func() tea.Msg {
		ctx := context.Background()
		if err := repo.Append(ctx, res); err != nil {
			logger.Warn("save quiz result", zap.Error(err))
			return resultSavedMsg{SessionID: res.SessionID, Err: err}
		}
		best, _, err := repo.DeckBest(ctx, res.DeckID)
		return resultSavedMsg{SessionID: res.SessionID, Best: best, Err: err}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(s.errMsg))
	}
	if s.session.Finished() {
		return s.renderResults(width, height)
	}

	st := s.session.Snapshot()
	bar := components.ProgressBar{Current: st.CurrentIndex + 1, Total: len(st.Questions), Width: min(width-8, 60)}

	var b strings.Builder
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	if s.choice.Answered() {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. You can change your answer."))
		}
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderResults(width, height int) string {
	sc := s.session.Score()
	st := s.session.Snapshot()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Test complete!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %s", sc)))
	b.WriteString("\n\n")

	for _, q := range st.Questions {
		mark, style := "✓", theme.Correct
		answer := "(passed)"
		if q.UserAnswer != nil {
			answer = *q.UserAnswer
		}
		if !q.IsCorrect {
			mark, style = "✗", theme.Incorrect
		}
		line := fmt.Sprintf("%s %s: %s", mark, q.Prompt, answer)
		if !q.IsCorrect {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  → " + q.CorrectAnswer)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	switch {
	case s.saveErr != "":
		b.WriteString("\n" + theme.ErrorText.Render("Could not save result: "+s.saveErr))
	case s.saved:
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("Best on this deck: %d%%", s.best)))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
