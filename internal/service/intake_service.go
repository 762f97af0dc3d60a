package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"greenwatch-be/internal/dto"
	"greenwatch-be/internal/entity"
	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/internal/repository/specification"
	"greenwatch-be/internal/repository/unitofwork"
	"greenwatch-be/pkg/audit"
	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/intake/orchestrator"
	"greenwatch-be/pkg/intake/schema"
	"greenwatch-be/pkg/intake/sequence"
	"greenwatch-be/pkg/intake/slot"
	"greenwatch-be/pkg/runner"
	"greenwatch-be/pkg/store"

	"github.com/google/uuid"
)

const intakeModule = "INTAKE"

// FailureMessage replaces the assistant reply when the runner cannot be
// reached. The turn is otherwise discarded.
const FailureMessage = "Sorry, something went wrong. Please try again."

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("session belongs to another user")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrNoDocument      = errors.New("session has no document attached")
	ErrRunnerDown      = errors.New("runner reports not ok")
)

type IIntakeService interface {
	CreateSession(ctx context.Context, ownerID string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	AttachDocument(ctx context.Context, ownerID, sessionID string, req *dto.AttachDocumentRequest) (*dto.TurnResponse, error)
	DetachDocument(ctx context.Context, ownerID, sessionID string) (*dto.SessionResponse, error)
	SendMessage(ctx context.Context, ownerID, sessionID string, req *dto.SendMessageRequest) (*dto.TurnResponse, error)
	GetSession(ctx context.Context, ownerID, sessionID string) (*dto.SessionResponse, error)
	GetMessages(ctx context.Context, ownerID, sessionID string) ([]dto.MessageResponse, error)
	ResetSession(ctx context.Context, ownerID, sessionID string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, ownerID, sessionID string) error
	ListLogs(ctx context.Context, ownerID string, limit, offset int) ([]dto.LogResponse, error)
	Schema(ctx context.Context) *dto.SchemaResponse
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

// TurnNotifier pushes the result of a turn to live subscribers of a session.
type TurnNotifier interface {
	NotifyTurn(sessionID string, turn *dto.TurnResponse)
}

type IntakeOptions struct {
	Schema             *schema.Schema
	Questions          []sequence.Question
	ReflectiveMinChars int
	Title              string
	// Locker defaults to an in-process lock.
	Locker contract.SessionLocker
}

type intakeService struct {
	schema    *schema.Schema
	questions []sequence.Question
	minChars  int
	title     string

	sessions   contract.SessionStore
	locker     contract.SessionLocker
	runner     runner.Runner
	uowFactory unitofwork.RepositoryFactory
	audit      audit.Publisher
	completion IPublisherService
	notifier   TurnNotifier
	logger     logger.ILogger
}

// NewIntakeService wires the dialogue packages to storage and transport.
// uowFactory, completion and notifier are optional.
func NewIntakeService(
	opts IntakeOptions,
	sessions contract.SessionStore,
	r runner.Runner,
	uowFactory unitofwork.RepositoryFactory,
	auditPublisher audit.Publisher,
	completion IPublisherService,
	notifier TurnNotifier,
	log logger.ILogger,
) IIntakeService {
	if opts.Schema == nil {
		opts.Schema = schema.EngineeringWatchLog()
	}
	if opts.Questions == nil {
		opts.Questions = sequence.DefaultQuestions()
	}
	if opts.ReflectiveMinChars <= 0 {
		opts.ReflectiveMinChars = sequence.DefaultReflectiveMinChars
	}
	if opts.Title == "" {
		opts.Title = sequence.DefaultTitle
	}
	if opts.Locker == nil {
		opts.Locker = store.NewLocker()
	}
	if auditPublisher == nil {
		auditPublisher = audit.NewNatsPublisher(nil, log)
	}
	return &intakeService{
		schema:     opts.Schema,
		questions:  opts.Questions,
		minChars:   opts.ReflectiveMinChars,
		title:      opts.Title,
		sessions:   sessions,
		locker:     opts.Locker,
		runner:     r,
		uowFactory: uowFactory,
		audit:      auditPublisher,
		completion: completion,
		notifier:   notifier,
		logger:     log,
	}
}

// live is a session with its dialogue state rebuilt from snapshots.
type live struct {
	session   *store.Session
	engine    *slot.Engine
	sequencer *sequence.Sequencer
	orch      *orchestrator.Orchestrator
	completed *sequence.Completion
}

func (s *intakeService) hydrate(sess *store.Session) *live {
	l := &live{session: sess}
	l.engine = slot.NewEngine(s.schema)
	l.engine.Restore(sess.Engine)
	l.sequencer = sequence.New(s.questions,
		sequence.WithEngine(l.engine),
		sequence.WithTitle(s.title),
		sequence.WithMinChars(sequence.CategoryReflective, s.minChars),
		sequence.WithCompletion(func(c sequence.Completion) {
			l.completed = &c
		}),
	)
	l.sequencer.Restore(sess.Sequencer)
	l.orch = orchestrator.New(l.engine)
	l.orch.Restore(sess.Orchestrator)
	return l
}

func (l *live) capture() {
	l.session.Engine = l.engine.Snapshot()
	l.session.Sequencer = l.sequencer.Snapshot()
	l.session.Orchestrator = l.orch.Snapshot()
	l.session.Mode = l.orch.Mode()
}

func (s *intakeService) lock(ctx context.Context, sessionID string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lock session %s: %w", sessionID, err)
	}
	return unlock, nil
}

// load fetches a session and checks ownership. The caller holds the lock.
func (s *intakeService) load(ctx context.Context, ownerID, sessionID string) (*store.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if !sess.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return sess, nil
}

func (s *intakeService) CreateSession(ctx context.Context, ownerID string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	sess := store.NewSession(uuid.NewString(), ownerID)
	l := s.hydrate(sess)

	if rs, err := s.runner.StartSession(ctx); err != nil {
		s.logger.Warn(intakeModule, "Runner start-session failed", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
		s.audit.PublishRunnerFailed(ctx, sess.ID, "start-session", err)
	} else {
		sess.RunnerSessionID = rs.SessionID
	}

	var out []intake.Message
	documentName := strings.TrimSpace(req.DocumentName)
	if documentName != "" {
		out = s.startQuestions(l, documentName)
	} else {
		sess.Phase = store.PhaseChat
		out = []intake.Message{intake.AssistantMessage(orchestrator.ChatAcknowledgment)}
	}
	sess.Append(out...)
	l.capture()

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.persistSession(ctx, sess, out, true)
	s.audit.PublishSessionStarted(ctx, sess.ID, ownerID, string(sess.Mode), sess.DocumentName)
	for _, m := range out {
		s.audit.PublishMessageRecorded(ctx, sess.ID, m)
	}

	s.logger.Info(intakeModule, "Session created", map[string]interface{}{"session_id": sess.ID, "phase": sess.Phase})
	return &dto.CreateSessionResponse{
		Session:  s.toSessionResponse(l),
		Messages: toMessageResponses(out),
	}, nil
}

// startQuestions switches the session into logging mode and begins the
// guided flow for documentName. Each document gets a fresh log.
func (s *intakeService) startQuestions(l *live, documentName string) []intake.Message {
	l.engine.Reset()
	l.session.DocumentName = documentName
	l.session.Phase = store.PhaseQuestions
	l.session.LogCompleted = false
	l.orch.EnableLogContext()
	return l.sequencer.Start(documentName)
}

func (s *intakeService) AttachDocument(ctx context.Context, ownerID, sessionID string, req *dto.AttachDocumentRequest) (*dto.TurnResponse, error) {
	documentName := strings.TrimSpace(req.DocumentName)
	if documentName == "" {
		return nil, ErrNoDocument
	}

	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	l := s.hydrate(sess)

	out := s.startQuestions(l, documentName)
	return s.finishTurn(ctx, l, out, nil)
}

func (s *intakeService) DetachDocument(ctx context.Context, ownerID, sessionID string) (*dto.SessionResponse, error) {
	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.DocumentName == "" {
		return nil, ErrNoDocument
	}
	l := s.hydrate(sess)

	l.orch.DisableLogContext()
	sess.DocumentName = ""
	sess.Phase = store.PhaseChat
	if _, err := s.finishTurn(ctx, l, nil, nil); err != nil {
		return nil, err
	}
	return s.toSessionResponse(l), nil
}

func (s *intakeService) SendMessage(ctx context.Context, ownerID, sessionID string, req *dto.SendMessageRequest) (*dto.TurnResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	l := s.hydrate(sess)

	if sess.Phase == store.PhaseQuestions {
		outcome := l.sequencer.SubmitAnswer(text)
		if outcome.Done {
			sess.Phase = store.PhaseChat
		}
		return s.finishTurn(ctx, l, outcome.Messages, nil)
	}

	runnerReply, err := s.askRunner(ctx, sess, text)
	if err != nil {
		s.logger.Error(intakeModule, "Runner send-message failed", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
		s.audit.PublishRunnerFailed(ctx, sess.ID, "send-message", err)
		out := []intake.Message{intake.UserMessage(text), intake.AssistantMessage(FailureMessage)}
		// Dialogue state is left as it was before the turn.
		sess.Append(out...)
		if err := s.save(ctx, sess); err != nil {
			return nil, err
		}
		s.afterTurn(ctx, l, out, false)
		return s.turnResponse(l, out, nil), nil
	}

	sess.Phase = store.PhaseChat
	reply := l.orch.SubmitText(text)
	assistantText := reply.AssistantText
	if !reply.Clarified && strings.TrimSpace(runnerReply.AssistantText) != "" {
		assistantText = runnerReply.AssistantText
	}

	out := []intake.Message{intake.UserMessage(text), intake.AssistantMessage(assistantText)}
	if reply.ShouldAskLogQuestion && !reply.Clarified {
		if q, ok := l.orch.NextLogQuestion(); ok {
			out = append(out, intake.AssistantMessage(q))
		}
	}
	return s.finishTurn(ctx, l, out, reply.LogProgress)
}

// askRunner forwards text to the runner, starting a runner session first if
// needed. A runner that forgot the session gets one fresh session and a
// single retry.
func (s *intakeService) askRunner(ctx context.Context, sess *store.Session, text string) (*runner.Reply, error) {
	if sess.RunnerSessionID == "" {
		if err := s.restartRunnerSession(ctx, sess); err != nil {
			return nil, err
		}
	}

	reply, err := s.runner.SendMessage(ctx, sess.RunnerSessionID, text)
	if errors.Is(err, runner.ErrUnknownSession) {
		if err := s.restartRunnerSession(ctx, sess); err != nil {
			return nil, err
		}
		reply, err = s.runner.SendMessage(ctx, sess.RunnerSessionID, text)
	}
	return reply, err
}

func (s *intakeService) restartRunnerSession(ctx context.Context, sess *store.Session) error {
	rs, err := s.runner.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("start runner session: %w", err)
	}
	sess.RunnerSessionID = rs.SessionID
	return nil
}

// finishTurn appends out, stores the session and fans the turn out to
// persistence, audit, completion and live subscribers.
func (s *intakeService) finishTurn(ctx context.Context, l *live, out []intake.Message, logProgress *float64) (*dto.TurnResponse, error) {
	l.session.Append(out...)
	l.capture()

	completed := l.completed
	if completed != nil {
		l.session.LogCompleted = true
	}

	if err := s.save(ctx, l.session); err != nil {
		return nil, err
	}

	s.afterTurn(ctx, l, out, completed != nil)
	if completed != nil {
		s.publishCompletion(ctx, l, completed)
	}
	return s.turnResponse(l, out, logProgress), nil
}

func (s *intakeService) save(ctx context.Context, sess *store.Session) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *intakeService) afterTurn(ctx context.Context, l *live, out []intake.Message, done bool) {
	sess := l.session
	s.persistSession(ctx, sess, out, false)

	for _, m := range out {
		s.audit.PublishMessageRecorded(ctx, sess.ID, m)
	}
	s.audit.PublishTurnCompleted(ctx, sess.ID, audit.Turn{
		Mode:     string(sess.Mode),
		Phase:    string(sess.Phase),
		Progress: s.progress(l),
		Done:     done,
	})

	if s.notifier != nil && len(out) > 0 {
		s.notifier.NotifyTurn(sess.ID, s.turnResponse(l, out, nil))
	}
}

func (s *intakeService) publishCompletion(ctx context.Context, l *live, c *sequence.Completion) {
	sess := l.session
	s.audit.PublishLogCompleted(ctx, sess.ID, c.Label, c.Answers)

	if s.completion == nil {
		return
	}
	payload, err := json.Marshal(dto.LogCompletedMessage{
		SessionId:   sess.ID,
		OwnerId:     sess.OwnerID,
		Label:       c.Label,
		Answers:     c.Answers,
		Fields:      l.engine.Log(),
		Summary:     c.Summary,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error(intakeModule, "Failed to encode completed log", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
		return
	}
	if err := s.completion.Publish(ctx, payload); err != nil {
		s.logger.Error(intakeModule, "Failed to publish completed log", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
	}
}

// persistSession mirrors the session row and the new messages into the
// database. Failures are logged and never fail the turn.
func (s *intakeService) persistSession(ctx context.Context, sess *store.Session, out []intake.Message, create bool) {
	if s.uowFactory == nil {
		return
	}
	id, err := uuid.Parse(sess.ID)
	if err != nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.logger.Error(intakeModule, "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		return
	}
	defer uow.Rollback()

	row := &entity.IntakeSession{
		Id:              id,
		OwnerId:         sess.OwnerID,
		DocumentName:    sess.DocumentName,
		Mode:            string(sess.Mode),
		Phase:           string(sess.Phase),
		RunnerSessionId: sess.RunnerSessionID,
		LogCompleted:    sess.LogCompleted,
		CreatedAt:       sess.CreatedAt,
	}
	if create {
		err = uow.IntakeSessionRepository().Create(ctx, row)
	} else {
		err = uow.IntakeSessionRepository().Update(ctx, row)
	}
	if err != nil {
		s.logger.Error(intakeModule, "Failed to persist session", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
		return
	}

	rows := make([]*entity.IntakeMessage, 0, len(out))
	for _, m := range out {
		msgID, err := uuid.Parse(m.ID)
		if err != nil {
			msgID = uuid.New()
		}
		rows = append(rows, &entity.IntakeMessage{
			Id:              msgID,
			IntakeSessionId: id,
			Role:            string(m.Role),
			Text:            m.Text,
			CreatedAt:       m.Timestamp,
		})
	}
	if err := uow.IntakeMessageRepository().CreateBatch(ctx, rows); err != nil {
		s.logger.Error(intakeModule, "Failed to persist messages", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
		return
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error(intakeModule, "Failed to commit transcript", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
	}
}

func (s *intakeService) GetSession(ctx context.Context, ownerID, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.load(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toSessionResponse(s.hydrate(sess)), nil
}

func (s *intakeService) GetMessages(ctx context.Context, ownerID, sessionID string) ([]dto.MessageResponse, error) {
	sess, err := s.load(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(sess.Messages), nil
}

func (s *intakeService) ResetSession(ctx context.Context, ownerID, sessionID string) (*dto.SessionResponse, error) {
	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	fresh := store.NewSession(sess.ID, sess.OwnerID)
	fresh.CreatedAt = sess.CreatedAt
	fresh.RunnerSessionID = sess.RunnerSessionID
	l := s.hydrate(fresh)
	l.capture()

	if err := s.save(ctx, fresh); err != nil {
		return nil, err
	}
	s.clearTranscript(ctx, fresh)
	s.logger.Info(intakeModule, "Session reset", map[string]interface{}{"session_id": sess.ID})
	return s.toSessionResponse(l), nil
}

func (s *intakeService) clearTranscript(ctx context.Context, sess *store.Session) {
	if s.uowFactory == nil {
		return
	}
	id, err := uuid.Parse(sess.ID)
	if err != nil {
		return
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.IntakeMessageRepository().DeleteBySessionId(ctx, id); err != nil {
		s.logger.Error(intakeModule, "Failed to clear transcript", map[string]interface{}{"error": err.Error(), "session_id": sess.ID})
	}
}

func (s *intakeService) DeleteSession(ctx context.Context, ownerID, sessionID string) error {
	unlock, err := s.lock(ctx, sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.load(ctx, ownerID, sessionID); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	defer s.locker.Forget(sessionID)

	if s.uowFactory != nil {
		if id, err := uuid.Parse(sessionID); err == nil {
			if err := s.uowFactory.NewUnitOfWork(ctx).IntakeSessionRepository().Delete(ctx, id); err != nil {
				s.logger.Error(intakeModule, "Failed to delete session row", map[string]interface{}{"error": err.Error(), "session_id": sessionID})
			}
		}
	}
	s.logger.Info(intakeModule, "Session deleted", map[string]interface{}{"session_id": sessionID})
	return nil
}

// ListLogs returns the completed logs of ownerID, newest first. Without a
// database there is nothing to list.
func (s *intakeService) ListLogs(ctx context.Context, ownerID string, limit, offset int) ([]dto.LogResponse, error) {
	if s.uowFactory == nil {
		return []dto.LogResponse{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.IntakeLogRepository().FindAll(ctx,
		specification.ByOwnerID{OwnerID: ownerID},
		specification.OrderBy{Field: "completed_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	out := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.LogResponse{
			Id:          l.Id.String(),
			SessionId:   l.IntakeSessionId.String(),
			Label:       l.Label,
			Answers:     l.Answers,
			Fields:      l.Fields,
			Summary:     l.Summary,
			CompletedAt: l.CompletedAt,
		})
	}
	return out, nil
}

func (s *intakeService) Schema(_ context.Context) *dto.SchemaResponse {
	questions := make([]dto.QuestionResponse, 0, len(s.questions))
	for _, q := range s.questions {
		questions = append(questions, dto.QuestionResponse{
			Id:       q.ID,
			Prompt:   q.Prompt,
			Category: string(q.Category),
			Field:    q.Field,
		})
	}
	return &dto.SchemaResponse{
		Name:      s.schema.Name,
		Fields:    dto.FieldsFromSchema(s.schema),
		Questions: questions,
	}
}

func (s *intakeService) Health(ctx context.Context) (*dto.HealthResponse, error) {
	h, err := s.runner.Health(ctx)
	if err != nil {
		s.audit.PublishRunnerFailed(ctx, "", "health", err)
		return nil, fmt.Errorf("runner health: %w", err)
	}
	if !h.OK {
		s.audit.PublishRunnerFailed(ctx, "", "health", ErrRunnerDown)
		return nil, ErrRunnerDown
	}
	return &dto.HealthResponse{Ok: h.OK, LLMLoaded: h.LLMLoaded, LLMModel: h.LLMModel}, nil
}

// progress is the guided-flow cursor while questions are asked and the
// engine fill ratio otherwise.
func (s *intakeService) progress(l *live) float64 {
	if l.session.Phase == store.PhaseQuestions {
		return l.sequencer.Progress()
	}
	return l.engine.Progress()
}

func (s *intakeService) turnResponse(l *live, out []intake.Message, logProgress *float64) *dto.TurnResponse {
	return &dto.TurnResponse{
		SessionId:   l.session.ID,
		Messages:    toMessageResponses(out),
		Mode:        string(l.session.Mode),
		Phase:       string(l.session.Phase),
		Progress:    s.progress(l),
		LogProgress: logProgress,
		Done:        l.sequencer.Done(),
	}
}

func (s *intakeService) toSessionResponse(l *live) *dto.SessionResponse {
	sess := l.session
	res := &dto.SessionResponse{
		Id:           sess.ID,
		DocumentName: sess.DocumentName,
		Mode:         string(sess.Mode),
		Phase:        string(sess.Phase),
		Progress:     s.progress(l),
		LogProgress:  l.engine.Progress(),
		Done:         l.sequencer.Done(),
		Log:          l.engine.Log(),
		Answers:      l.sequencer.Answers(),
		Summary:      l.sequencer.Summary(),
		MessageCount: len(sess.Messages),
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
	}
	if sess.Phase == store.PhaseQuestions {
		if q, ok := l.sequencer.Current(); ok {
			res.CurrentPrompt = q.Prompt
		}
	} else if q, ok := l.orch.NextLogQuestion(); ok {
		res.CurrentPrompt = q
	}
	return res
}

func toMessageResponses(msgs []intake.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.MessageResponse{
			Id:        m.ID,
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}
	return out
}
