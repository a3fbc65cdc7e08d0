// Package syncengine routes section reads and writes between the remote
// document store and the device-local mirror.
package syncengine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uzazi-salama-backend/mirror"
	"uzazi-salama-backend/section"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RemoteStore is the keyed document store as seen from a client
type RemoteStore interface {
	// Get returns the stored section and whether it was ever written
	Get(ctx context.Context, userID string, kind section.Kind) (json.RawMessage, bool, error)

	// Put replaces the section and returns the value the store kept
	Put(ctx context.Context, userID string, kind section.Kind, data json.RawMessage) (json.RawMessage, error)
}

// SyncContext carries the identity and local store for one call
type SyncContext struct {
	Authenticated bool
	UserID        string
	Local         mirror.Mirror
}

// Target records where a write landed
type Target int

const (
	TargetRemote Target = iota + 1
	TargetLocalFallback
	TargetLocal
)

func (t Target) String() string {
	switch t {
	case TargetRemote:
		return "remote"
	case TargetLocalFallback:
		return "local-fallback"
	case TargetLocal:
		return "local"
	}
	return "unknown"
}

// Written is the outcome of a write. Cause holds the remote error that was
// absorbed when Target is TargetLocalFallback.
type Written struct {
	Target Target
	Value  section.Value
	Cause  error
}

// Source records where a read was served from
type Source int

const (
	SourceRemote Source = iota + 1
	SourceLocal
	SourceLocalFallback
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	case SourceLocalFallback:
		return "local-fallback"
	}
	return "unknown"
}

// Snapshot is the outcome of a read
type Snapshot struct {
	Source Source
	Value  section.Value
	Cause  error
}

// Engine applies section transforms against the remote store and mirror
type Engine struct {
	remote RemoteStore
	log    *zap.SugaredLogger
	now    func() time.Time
	newID  func() string
	lang   section.Language
}

// Option is a functional option for Engine
type Option func(*Engine)

// WithLogger sets the logger used for absorbed remote failures
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithClock overrides the clock used for timestamps and kick day buckets
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides appointment id generation
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// WithLanguage selects the language of seeded checklists
func WithLanguage(lang section.Language) Option {
	return func(e *Engine) {
		e.lang = lang
	}
}

// New creates an engine. remote may be nil for a purely local client.
func New(remote RemoteStore, opts ...Option) *Engine {
	e := &Engine{
		remote: remote,
		log:    zap.NewNop().Sugar(),
		now:    time.Now,
		newID:  uuid.NewString,
		lang:   section.LangEnglish,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type transform func(section.Value) (section.Value, error)

func (e *Engine) online(sc SyncContext) bool {
	return sc.Authenticated && e.remote != nil
}

// seed fills the parts of a section that were never written with built-in
// content. Parts stored as empty lists stay empty.
func (e *Engine) seed(v section.Value, unset map[string]bool) section.Value {
	switch s := v.(type) {
	case section.RemindersSection:
		if unset[section.MirrorKeyReminders] {
			d := section.DefaultReminders()
			d.LastUpdated = s.LastUpdated
			return d
		}
	case section.BabyPrepSection:
		if unset[section.MirrorKeyHospitalBag] {
			s.HospitalBag = section.DefaultChecklist(section.ListHospitalBag, e.lang)
		}
		if unset[section.MirrorKeyNurseryChecklist] {
			s.Nursery = section.DefaultChecklist(section.ListNursery, e.lang)
		}
		return s
	}
	return v
}

// allUnset marks every part of kind as never written
func allUnset(kind section.Kind) map[string]bool {
	unset := make(map[string]bool)
	for _, key := range kind.MirrorKeys() {
		unset[key] = true
	}
	return unset
}

// mutate runs the read-modify-write cycle for kind. With strict set a remote
// failure is returned instead of falling back to the mirror.
func (e *Engine) mutate(ctx context.Context, sc SyncContext, kind section.Kind, strict bool, fn transform) (Written, error) {
	if sc.Local == nil {
		return Written{}, errNoMirror
	}
	if !e.online(sc) {
		return e.writeLocal(ctx, sc, kind, fn, TargetLocal, nil)
	}

	stored, err := e.writeRemote(ctx, sc, kind, fn)
	if err == nil {
		if err := storeLocal(ctx, sc.Local, stored); err != nil {
			e.log.Warnw("failed to mirror section", "kind", kind, "error", err)
		}
		return Written{Target: TargetRemote, Value: stored}, nil
	}
	if !recoverable(err) {
		return Written{}, err
	}
	if strict {
		return Written{}, fmt.Errorf("save %s: %w", kind, err)
	}

	e.log.Warnw("remote write failed, saving locally",
		"kind", kind,
		"userID", sc.UserID,
		"error", err,
	)
	return e.writeLocal(ctx, sc, kind, fn, TargetLocalFallback, err)
}

func (e *Engine) writeRemote(ctx context.Context, sc SyncContext, kind section.Kind, fn transform) (section.Value, error) {
	current, unset, err := e.fetchRemote(ctx, sc, kind)
	if err != nil {
		return nil, err
	}
	next, err := fn(e.seed(current, unset))
	if err != nil {
		return nil, err
	}
	if err := section.Validate(next); err != nil {
		return nil, err
	}
	data, err := section.Encode(next)
	if err != nil {
		return nil, err
	}

	kept, err := e.remote.Put(ctx, sc.UserID, kind, data)
	if err != nil {
		return nil, err
	}
	if len(kept) == 0 {
		return next, nil
	}
	stored, err := section.Decode(kind, kept)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return stored, nil
}

// fetchRemote returns the remote section, or its default when never written,
// along with the parts that have no stored list.
func (e *Engine) fetchRemote(ctx context.Context, sc SyncContext, kind section.Kind) (section.Value, map[string]bool, error) {
	raw, found, err := e.remote.Get(ctx, sc.UserID, kind)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return section.Default(kind), allUnset(kind), nil
	}
	v, unset, err := decodeRemote(kind, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return v, unset, nil
}

func decodeRemote(kind section.Kind, raw json.RawMessage) (section.Value, map[string]bool, error) {
	v, err := section.Decode(kind, raw)
	if err != nil {
		return nil, nil, err
	}
	unset, err := section.UnsetKeys(kind, raw)
	if err != nil {
		return nil, nil, err
	}
	return v, unset, nil
}

func (e *Engine) writeLocal(ctx context.Context, sc SyncContext, kind section.Kind, fn transform, target Target, cause error) (Written, error) {
	current, unset, err := loadLocal(ctx, sc.Local, kind)
	if err != nil {
		return Written{}, err
	}
	next, err := fn(e.seed(current, unset))
	if err != nil {
		return Written{}, err
	}
	if err := section.Validate(next); err != nil {
		return Written{}, err
	}
	if err := storeLocal(ctx, sc.Local, next); err != nil {
		return Written{}, err
	}
	return Written{Target: target, Value: next, Cause: cause}, nil
}

// Read returns kind from the remote store when authenticated, refreshing the
// mirror, and from the mirror otherwise or when the remote read fails.
func (e *Engine) Read(ctx context.Context, sc SyncContext, kind section.Kind) (Snapshot, error) {
	if !kind.Valid() {
		_, err := section.ParseKind(string(kind))
		return Snapshot{}, err
	}
	if sc.Local == nil {
		return Snapshot{}, errNoMirror
	}

	source := SourceLocal
	var cause error
	if e.online(sc) {
		raw, found, err := e.remote.Get(ctx, sc.UserID, kind)
		if err == nil && found {
			var (
				v     section.Value
				unset map[string]bool
			)
			v, unset, err = decodeRemote(kind, raw)
			if err == nil {
				v = e.seed(v, unset)
				if err := storeLocal(ctx, sc.Local, v); err != nil {
					e.log.Warnw("failed to mirror section", "kind", kind, "error", err)
				}
				return Snapshot{Source: SourceRemote, Value: v}, nil
			}
			err = fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}
		if err == nil {
			// Never written remotely; local data from an anonymous session is
			// kept but not shown as the account's data.
			return Snapshot{Source: SourceRemote, Value: e.seed(section.Default(kind), allUnset(kind))}, nil
		}
		if !recoverable(err) {
			return Snapshot{}, err
		}

		e.log.Warnw("remote read failed, using local mirror",
			"kind", kind,
			"userID", sc.UserID,
			"error", err,
		)
		source, cause = SourceLocalFallback, err
	}

	v, unset, err := loadLocal(ctx, sc.Local, kind)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Source: source, Value: e.seed(v, unset), Cause: cause}, nil
}

// Clear resets kind to its empty value on whichever store serves the context
func (e *Engine) Clear(ctx context.Context, sc SyncContext, kind section.Kind) (Written, error) {
	if !kind.Valid() {
		_, err := section.ParseKind(string(kind))
		return Written{}, err
	}
	return e.mutate(ctx, sc, kind, false, func(section.Value) (section.Value, error) {
		return section.Default(kind), nil
	})
}

// loadLocal rebuilds kind from the mirror and reports the keys it lacks
func loadLocal(ctx context.Context, m mirror.Mirror, kind section.Kind) (section.Value, map[string]bool, error) {
	parts := make(map[string]json.RawMessage)
	unset := make(map[string]bool)
	for _, key := range kind.MirrorKeys() {
		raw, ok, err := m.Read(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read mirror key %s: %w", key, err)
		}
		if ok && string(raw) != "null" {
			parts[key] = raw
		} else {
			unset[key] = true
		}
	}
	v, err := section.Join(kind, parts)
	if err != nil {
		return nil, nil, err
	}
	return v, unset, nil
}

func storeLocal(ctx context.Context, m mirror.Mirror, v section.Value) error {
	parts, err := section.Split(v)
	if err != nil {
		return err
	}
	for key, raw := range parts {
		if err := m.Write(ctx, key, raw); err != nil {
			return fmt.Errorf("failed to write mirror key %s: %w", key, err)
		}
	}
	return nil
}
