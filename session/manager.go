package session

import (
	"go.uber.org/zap"

	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/geom"
	"github.com/Neumenon/elucidator/handle"
)

// Manager is the process-wide session table from §4.6: a single
// handle.Table[Session] under one read/write lock. It implements the five
// public operations of §4.5 directly in terms of handles, composing the
// handle table (lookup/lifetime) with Session (registry + index,
// per-session locking) described in session.go.
type Manager struct {
	sessions *handle.Table[Session]
	logger   *zap.SugaredLogger
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithLogger sets the *zap.SugaredLogger a Manager logs session lifecycle
// events and recoverable errors to. Without this option a Manager logs to
// a no-op logger, matching teranos-QNTX's logger.Initialize convention of
// never leaving a nil logger for callers to guard against.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager returns an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: handle.NewTable[Session](unknownSessionErr),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func unknownSessionErr(id uint32) error {
	return errs.New(errs.UnknownSession, "no session for handle %d", id)
}

// NewSession creates a session with the chosen backend and returns its
// handle.
func (m *Manager) NewSession(backend Backend) (uint32, error) {
	h, err := m.sessions.New(New(backend))
	if err != nil {
		m.logger.Errorw("session creation failed", "backend", backend, "error", err)
		return 0, err
	}
	m.logger.Infow("session created", "handle", h, "backend", backend)
	return h, nil
}

// AddSpec registers designation/memberText on the session identified by h.
func (m *Manager) AddSpec(h uint32, designation, memberText string) error {
	s, err := m.sessions.Get(h)
	if err != nil {
		m.logger.Errorw("add_spec failed", "handle", h, "designation", designation, "error", err)
		return err
	}
	if err := s.AddSpec(designation, memberText); err != nil {
		m.logger.Errorw("add_spec failed", "handle", h, "designation", designation, "error", err)
		return err
	}
	m.logger.Infow("spec registered", "handle", h, "designation", designation)
	return nil
}

// AddFullSpec registers a full designation(...) specification text on the
// session identified by h.
func (m *Manager) AddFullSpec(h uint32, text string) error {
	s, err := m.sessions.Get(h)
	if err != nil {
		m.logger.Errorw("add_full_spec failed", "handle", h, "error", err)
		return err
	}
	if err := s.AddFullSpec(text); err != nil {
		m.logger.Errorw("add_full_spec failed", "handle", h, "error", err)
		return err
	}
	m.logger.Infow("spec registered", "handle", h)
	return nil
}

// InsertMetadata stores blob under designation at [min, max] on the
// session identified by h.
func (m *Manager) InsertMetadata(h uint32, min, max geom.Point, designation string, blob []byte) error {
	s, err := m.sessions.Get(h)
	if err != nil {
		m.logger.Errorw("insert_metadata failed", "handle", h, "designation", designation, "error", err)
		return err
	}
	if err := s.InsertMetadata(min, max, designation, blob); err != nil {
		m.logger.Errorw("insert_metadata failed", "handle", h, "designation", designation, "error", err)
		return err
	}
	return nil
}

// QueryMetadata queries the session identified by h for blobs tagged
// designation whose bbox is contained in [min, max] within epsilon slack.
func (m *Manager) QueryMetadata(h uint32, min, max geom.Point, designation string, epsilon float64) ([][]byte, error) {
	s, err := m.sessions.Get(h)
	if err != nil {
		m.logger.Errorw("query_metadata failed", "handle", h, "designation", designation, "error", err)
		return nil, err
	}
	results, err := s.QueryMetadata(min, max, designation, epsilon)
	if err != nil {
		m.logger.Errorw("query_metadata failed", "handle", h, "designation", designation, "error", err)
		return nil, err
	}
	return results, nil
}

// ReleaseSession releases the handle and discards the session's registry
// and index.
func (m *Manager) ReleaseSession(h uint32) error {
	if err := m.sessions.Release(h); err != nil {
		m.logger.Errorw("session release failed", "handle", h, "error", err)
		return err
	}
	m.logger.Infow("session released", "handle", h)
	return nil
}

// SessionCount returns the number of live sessions, for debug printers.
func (m *Manager) SessionCount() int {
	return m.sessions.Len()
}

// SessionForDebug returns the live *Session for h, for print_session/
// print_designation-style debug printers that need read-only access to
// the registry beyond the five public operations.
func (m *Manager) SessionForDebug(h uint32) (*Session, error) {
	return m.sessions.Get(h)
}
