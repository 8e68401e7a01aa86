package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/newmobile/internal/domain"
)

// Session is one open product edit: the hydrated tree plus bookkeeping. The
// tree is only ever read or written under the usecase lock.
type Session struct {
	ID        string          `json:"id"`
	Product   *domain.Product `json:"product"`
	OpenedAt  time.Time       `json:"openedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SessionView is a point-in-time snapshot of a session, taken under the lock
// so it stays safe to encode after the lock is released.
type SessionView struct {
	ID        string          `json:"id"`
	Product   json.RawMessage `json:"product"`
	OpenedAt  time.Time       `json:"openedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SessionUC owns the in-memory session registry and coordinates the edit
// lifecycle: open (fetch + hydrate), mutate, submit, cancel. Drafts is
// optional; when present every mutation autosaves a snapshot.
type SessionUC struct {
	Catalog domain.CatalogGateway
	Drafts  domain.DraftRepo
	Build   domain.SubmissionBuilder

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionUC(gw domain.CatalogGateway, drafts domain.DraftRepo, build domain.SubmissionBuilder) *SessionUC {
	return &SessionUC{Catalog: gw, Drafts: drafts, Build: build, sessions: map[string]*Session{}}
}

// Open fetches the product and starts an edit session over the hydrated tree.
func (uc *SessionUC) Open(ctx context.Context, productID string) (*Session, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("product id empty")
	}
	p, err := uc.Catalog.FetchProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &Session{ID: uuid.NewString(), Product: p, OpenedAt: now, UpdatedAt: now}
	uc.mu.Lock()
	uc.sessions[s.ID] = s
	uc.mu.Unlock()
	return s, nil
}

// Get returns an open session by id. The caller must not touch the tree
// without the lock; use View for read access.
func (uc *SessionUC) Get(id string) (*Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[id]
	if !ok {
		return nil, domain.ErrSessionClosed
	}
	return s, nil
}

// View snapshots an open session for encoding outside the lock.
func (uc *SessionUC) View(id string) (*SessionView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[id]
	if !ok {
		return nil, domain.ErrSessionClosed
	}
	return viewOf(s)
}

// viewOf marshals the tree; callers hold the lock.
func viewOf(s *Session) (*SessionView, error) {
	raw, err := json.Marshal(s.Product)
	if err != nil {
		return nil, err
	}
	return &SessionView{ID: s.ID, Product: raw, OpenedAt: s.OpenedAt, UpdatedAt: s.UpdatedAt}, nil
}

// Mutation names accepted by Apply.
const (
	OpAddAxis        = "add_axis"
	OpAddColor       = "add_color"
	OpAddStorage     = "add_storage"
	OpRemove         = "remove"
	OpUpdate         = "update"
	OpSetDefaultAxis = "set_default_axis"
)

// Op is one mutation against a session's tree.
type Op struct {
	Action string `json:"action"`
	Target string `json:"target"` // entity id for remove/update/set_default_axis
	Owner  string `json:"owner"`  // axis id for add_color, axis or color id for add_storage
	Field  string `json:"field"`  // for update
	Value  string `json:"value"`  // for update
}

// Apply runs one mutation. Operations addressing ids that no longer exist are
// no-ops, mirroring how the editor treats stale references.
func (uc *SessionUC) Apply(ctx context.Context, sessionID string, op Op) (*SessionView, error) {
	s, err := uc.Get(sessionID)
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	p := s.Product
	switch op.Action {
	case OpAddAxis:
		p.AddAxis()
	case OpAddColor:
		p.AddColor(domain.ID(op.Owner))
	case OpAddStorage:
		uc.addStorage(p, domain.ID(op.Owner))
	case OpRemove:
		p.Remove(domain.ID(op.Target))
	case OpUpdate:
		p.Update(domain.ID(op.Target), op.Field, op.Value)
	case OpSetDefaultAxis:
		p.SetDefaultAxis(domain.ID(op.Target))
	default:
		return nil, errors.New("unknown op: " + op.Action)
	}

	s.UpdatedAt = time.Now()
	uc.autosave(ctx, s)
	return viewOf(s)
}

// addStorage targets either an axis (default tier) or a color (custom tier).
func (uc *SessionUC) addStorage(p *domain.Product, owner domain.ID) {
	if a := p.FindAxis(owner); a != nil {
		a.AddDefaultStorage()
		return
	}
	if c := p.FindColor(owner); c != nil {
		c.AddStorage()
	}
}

// AttachImage stores a pending upload on a color; the file lives in memory
// until the session closes.
func (uc *SessionUC) AttachImage(ctx context.Context, sessionID string, colorID string, file *domain.ImageFile, preview string) (*SessionView, error) {
	s, err := uc.Get(sessionID)
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s.Product.AttachImage(domain.ID(colorID), file, preview)
	s.UpdatedAt = time.Now()
	uc.autosave(ctx, s)
	return viewOf(s)
}

// Submit builds and sends the submission. Serialization reads the tree, so it
// runs under the lock; only the network call runs outside it. Validation
// failures and transport errors both leave the session open and the tree
// untouched; only a successful submit closes the session.
func (uc *SessionUC) Submit(ctx context.Context, sessionID string) error {
	s, err := uc.Get(sessionID)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	sub, err := uc.Build(s.Product)
	uc.mu.Unlock()
	if err != nil {
		return err
	}
	if err := uc.Catalog.SubmitProduct(ctx, sub); err != nil {
		return err
	}
	uc.close(ctx, s)
	return nil
}

// Cancel discards the session and its pending files.
func (uc *SessionUC) Cancel(ctx context.Context, sessionID string) {
	if s, err := uc.Get(sessionID); err == nil {
		uc.close(ctx, s)
	}
}

func (uc *SessionUC) close(ctx context.Context, s *Session) {
	uc.mu.Lock()
	delete(uc.sessions, s.ID)
	s.Product.ReleaseFiles()
	uc.mu.Unlock()
	if uc.Drafts != nil {
		if id, ok := s.Product.ID.Wire(); ok {
			if err := uc.Drafts.Delete(ctx, id); err != nil {
				log.Warn().Err(err).Str("product", id).Msg("could not drop draft")
			}
		}
	}
}

// autosave snapshots the tree for resume; failures only log. Callers hold the
// lock.
func (uc *SessionUC) autosave(ctx context.Context, s *Session) {
	if uc.Drafts == nil {
		return
	}
	id, ok := s.Product.ID.Wire()
	if !ok {
		return
	}
	snapshot, err := json.Marshal(s.Product)
	if err != nil {
		log.Warn().Err(err).Str("product", id).Msg("could not snapshot session")
		return
	}
	d := &domain.Draft{ProductID: id, Type: string(s.Product.Type), Snapshot: snapshot}
	if err := uc.Drafts.Save(ctx, d); err != nil {
		log.Warn().Err(err).Str("product", id).Msg("could not autosave draft")
	}
}

// Resume reopens a session from an autosaved draft instead of refetching.
// Pending image files are gone; everything else is restored.
func (uc *SessionUC) Resume(ctx context.Context, productID string) (*Session, error) {
	if uc.Drafts == nil {
		return nil, domain.ErrNotFound
	}
	d, err := uc.Drafts.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(d.Snapshot, &p); err != nil {
		return nil, err
	}
	// Axis kind is not serialized; restore it from the list each axis sits in.
	for i := range p.Networks {
		p.Networks[i].Kind = domain.AxisNetwork
	}
	for i := range p.Regions {
		p.Regions[i].Kind = domain.AxisRegion
	}
	now := time.Now()
	s := &Session{ID: uuid.NewString(), Product: &p, OpenedAt: now, UpdatedAt: now}
	uc.mu.Lock()
	uc.sessions[s.ID] = s
	uc.mu.Unlock()
	return s, nil
}
