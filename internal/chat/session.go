package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tabletalk/tabletalk/internal/dataset"
	"github.com/tabletalk/tabletalk/internal/gemini"
	"github.com/tabletalk/tabletalk/internal/insight"
	"github.com/tabletalk/tabletalk/internal/prompt"
)

// ErrBusy is returned when an exchange is already in flight for the session.
var ErrBusy = errors.New("an exchange is already in flight")

// Generator submits one built request to the analysis service.
type Generator interface {
	Generate(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

// Session owns one conversation: the current dataset, the message log and an
// in-flight flag. At most one exchange runs at a time; the session itself
// enforces this rather than trusting caller discipline. A session is never
// shared across users; servers hosting many users create one per user.
type Session struct {
	gen     Generator
	builder *prompt.Builder
	logger  *slog.Logger

	ds   *dataset.Dataset
	log  Log
	busy atomic.Bool
	now  func() time.Time
}

func NewSession(gen Generator, builder *prompt.Builder, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{gen: gen, builder: builder, logger: logger, now: time.Now}
}

// LoadDataset parses raw text and replaces the session dataset wholesale.
// The conversation log is reset: history is scoped to one dataset.
func (s *Session) LoadDataset(raw string) (*dataset.Dataset, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	ds, err := dataset.Parse(raw)
	if err != nil {
		return nil, err
	}
	s.ds = ds
	s.log.reset()
	s.logger.Info("dataset loaded", "columns", len(ds.Columns), "rows", len(ds.Rows))
	return ds, nil
}

// Dataset returns the currently loaded dataset, or nil.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// History returns the conversation so far, oldest first.
func (s *Session) History() []Message { return s.log.All() }

// Ask runs one exchange: validate, build, submit, decode, append. Every
// failure is recovered at this boundary; the dataset and log stay usable for
// the next question. On failure a system-notice message is appended and the
// typed error is returned; the assistant message is appended only on success.
func (s *Session) Ask(ctx context.Context, question string) (Message, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Message{}, ErrBusy
	}
	defer s.busy.Store(false)

	req, err := s.builder.Build(question, s.ds)
	if err != nil {
		s.log.Append(newMessage(RoleNotice, err.Error(), nil, s.now()))
		return Message{}, err
	}
	s.log.Append(newMessage(RoleUser, question, nil, s.now()))
	s.logger.Debug("exchange started", "question", question)

	raw, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("analysis service failed", "error", err)
		s.log.Append(newMessage(RoleNotice, noticeFor(err), nil, s.now()))
		return Message{}, err
	}
	res, err := insight.Decode(raw)
	if err != nil {
		var decErr *insight.DecodeError
		if errors.As(err, &decErr) {
			s.logger.Warn("undecodable reply", "reason", decErr.Reason, "raw", decErr.Raw)
		}
		s.log.Append(newMessage(RoleNotice, noticeFor(err), nil, s.now()))
		return Message{}, err
	}

	msg := newMessage(RoleAssistant, res.AnalysisText, res.ChartSVG, s.now())
	s.log.Append(msg)
	return msg, nil
}

// noticeFor phrases a failed exchange for the log. The remediation differs
// by kind: a service failure means try again later, a decode failure means
// the question may need rephrasing.
func noticeFor(err error) string {
	var svcErr *gemini.ServiceError
	if errors.As(err, &svcErr) {
		return "analysis service unavailable: " + err.Error()
	}
	var decErr *insight.DecodeError
	if errors.As(err, &decErr) {
		return "could not interpret the analysis reply; try rephrasing the question"
	}
	return err.Error()
}
