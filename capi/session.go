package capi

import (
	"github.com/Neumenon/elucidator/errs"
	"github.com/Neumenon/elucidator/handle"
	"github.com/Neumenon/elucidator/session"
)

// API is the process-wide foreign-API surface: one session.Manager plus
// the error-handle table that every fallible call populates on failure.
// A process embeds exactly one API value; the bindings (out of scope)
// would expose it through package-level functions closing over a single
// global instance.
type API struct {
	sessions *session.Manager
	errors   *handle.Table[errs.Error]
}

// NewAPI returns a fresh API with no live sessions or errors. opts are
// forwarded to session.NewManager, e.g. session.WithLogger.
func NewAPI(opts ...session.Option) *API {
	return &API{
		sessions: session.NewManager(opts...),
		errors:   handle.NewTable[errs.Error](unknownErrorHandleErr),
	}
}

func unknownErrorHandleErr(id uint32) error {
	return errs.New(errs.UnknownSession, "no error object for handle %d", id)
}

// recordError stores err into the error-handle table and returns the
// (status, handle) pair every fallible ABI function returns on failure.
// A nil err returns (StatusOK, zero handle).
func (a *API) recordError(err error) (Status, ErrorHandle) {
	if err == nil {
		return StatusOK, ErrorHandle{}
	}
	e, ok := errs.AsError(err)
	if !ok {
		e = &errs.Error{Kind: errs.OutOfMemory, Message: err.Error(), Offset: -1}
	}
	id, allocErr := a.errors.New(e)
	if allocErr != nil {
		// the error table itself is poisoned; nothing left to do but
		// surface that instead.
		return errs.StatusFor(allocErr), ErrorHandle{}
	}
	return errs.StatusFor(e), ErrorHandle{ID: id}
}

// NewSession implements new_session: creates a session with the given
// backend and returns its handle. §4.5 lists no failure modes for this
// operation beyond the universal PoisonedState.
func (a *API) NewSession(backend Backend) (SessionHandle, Status, ErrorHandle) {
	id, err := a.sessions.NewSession(backend.toSessionBackend())
	status, errHandle := a.recordError(err)
	return SessionHandle{ID: id}, status, errHandle
}

// AddSpecToSession implements add_spec_to_session: registers designation
// with the member-list text memberText on the session h.
func (a *API) AddSpecToSession(h SessionHandle, designation, memberText string) (Status, ErrorHandle) {
	err := a.sessions.AddSpec(h.ID, designation, memberText)
	return a.recordError(err)
}

// InsertMetadataInSession implements insert_metadata_in_session: stores an
// owned copy of blob, tagged designation, at bbox.
func (a *API) InsertMetadataInSession(h SessionHandle, bbox BoundingBox, designation string, blob []byte) (Status, ErrorHandle) {
	err := a.sessions.InsertMetadata(h.ID, bbox.Min.toGeom(), bbox.Max.toGeom(), designation, blob)
	return a.recordError(err)
}

// GetMetadataInBB implements get_metadata_in_bb: queries session h for
// blobs tagged designation whose bbox is contained in bbox within epsilon
// slack, returning them as an owned BufNode list.
func (a *API) GetMetadataInBB(h SessionHandle, bbox BoundingBox, designation string, epsilon float64) (*BufNode, Status, ErrorHandle) {
	blobs, err := a.sessions.QueryMetadata(h.ID, bbox.Min.toGeom(), bbox.Max.toGeom(), designation, epsilon)
	status, errHandle := a.recordError(err)
	if err != nil {
		return nil, status, errHandle
	}
	return buildBufList(blobs), status, errHandle
}

// ReleaseSession implements release_session.
func (a *API) ReleaseSession(h SessionHandle) (Status, ErrorHandle) {
	err := a.sessions.ReleaseSession(h.ID)
	return a.recordError(err)
}

// GetErrorString implements get_error_string: returns a freshly allocated
// message for h, transferring ownership to the caller (in Go, a plain
// string copy — there is no separate free routine for strings since Go
// strings are garbage collected, unlike the BufNode byte buffers).
func (a *API) GetErrorString(h ErrorHandle) (string, bool) {
	e, err := a.errors.Get(h.ID)
	if err != nil {
		return "", false
	}
	return e.Error(), true
}
