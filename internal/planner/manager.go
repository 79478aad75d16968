package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

// Persister stores the plan snapshot. Load returns nil when nothing is stored.
type Persister interface {
	Load(ctx context.Context) (*model.PlanState, error)
	Save(ctx context.Context, s model.PlanState) error
	Clear(ctx context.Context) error
}

// EvidenceReader turns a user-selected file into an evidence reference.
type EvidenceReader interface {
	ReadEvidence(ctx context.Context, path string) (model.Evidence, error)
}

// Renderer is notified after every mutation.
type Renderer interface {
	Render(s model.PlanState, p model.Progress)
	EvidenceUnavailable(index int, err error)
}

// NopRenderer discards all notifications.
type NopRenderer struct{}

// Render implements Renderer.
func (NopRenderer) Render(model.PlanState, model.Progress) {}

// EvidenceUnavailable implements Renderer.
func (NopRenderer) EvidenceUnavailable(int, error) {}

// Manager owns the plan state and applies user actions to it. Each mutation
// is persisted and then rendered. Manager is not safe for concurrent use.
type Manager struct {
	state    model.PlanState
	store    Persister
	renderer Renderer

	now   func() time.Time
	newID func() string
}

// NewManager returns a Manager over the empty plan. store may be nil for an
// in-memory plan and r may be nil to skip rendering.
func NewManager(store Persister, r Renderer) *Manager {
	if r == nil {
		r = NopRenderer{}
	}
	return &Manager{
		state:    model.EmptyState(),
		store:    store,
		renderer: r,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Open returns a Manager initialized from the persisted snapshot, if any.
func Open(ctx context.Context, store Persister, r Renderer) (*Manager, error) {
	m := NewManager(store, r)
	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload replaces the in-memory state with the persisted snapshot.
func (m *Manager) Reload(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	loaded, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	if loaded == nil {
		m.state = model.EmptyState()
	} else {
		Normalize(loaded)
		m.state = *loaded
	}
	slog.Debug("plan loaded", "periods", m.state.PeriodCount, "plan_id", m.state.PlanID)
	return nil
}

// State returns a copy of the current plan state.
func (m *Manager) State() model.PlanState {
	s := m.state
	s.Periods = append([]model.Period(nil), m.state.Periods...)
	return s
}

// Progress returns the aggregate of the current state.
func (m *Manager) Progress() model.Progress {
	return Aggregate(m.state)
}

// Calculate derives targets from cfg and reconciles the existing periods.
func (m *Manager) Calculate(ctx context.Context, cfg model.PlanConfig) (Targets, error) {
	prev := m.State()
	t := Recalculate(&m.state, cfg)
	if m.state.PlanID == "" {
		m.state.PlanID = m.newID()
	}
	slog.Debug("plan calculated",
		"per_period", t.PerPeriodTarget.StringFixed(MoneyPlaces),
		"total", t.TotalTarget.StringFixed(MoneyPlaces),
		"periods", t.PeriodCount,
	)
	return t, m.commit(ctx, prev)
}

// SetSavedAmount records the amount saved in one period. Unknown indices are
// ignored.
func (m *Manager) SetSavedAmount(ctx context.Context, index int, amount decimal.Decimal) error {
	prev := m.State()
	if !SetSavedAmount(&m.state, index, amount) {
		slog.Debug("ignoring amount for unknown period", "index", index)
		return nil
	}
	return m.commit(ctx, prev)
}

// AttachEvidence replaces the evidence of one period.
func (m *Manager) AttachEvidence(ctx context.Context, index int, ev model.Evidence) error {
	if ev.AttachedAt.IsZero() {
		ev.AttachedAt = m.now().UTC()
	}
	prev := m.State()
	if !AttachEvidence(&m.state, index, ev) {
		slog.Debug("ignoring evidence for unknown period", "index", index)
		return nil
	}
	return m.commit(ctx, prev)
}

// AttachEvidenceFrom reads path through r and attaches the result. A read
// failure is reported to the renderer and returned wrapped in
// ErrEvidenceUnavailable; the period keeps its previous evidence.
func (m *Manager) AttachEvidenceFrom(ctx context.Context, index int, r EvidenceReader, path string) error {
	ev, err := r.ReadEvidence(ctx, path)
	if err != nil {
		m.renderer.EvidenceUnavailable(index, err)
		return fmt.Errorf("%w: %w", ErrEvidenceUnavailable, err)
	}
	return m.AttachEvidence(ctx, index, ev)
}

// EvidenceFailed reports a failed asynchronous evidence read to the renderer.
func (m *Manager) EvidenceFailed(index int, err error) {
	m.renderer.EvidenceUnavailable(index, err)
}

// ToggleCompletion fills or clears one period.
func (m *Manager) ToggleCompletion(ctx context.Context, index int) error {
	prev := m.State()
	if !ToggleCompletion(&m.state, index) {
		return nil
	}
	return m.commit(ctx, prev)
}

// Reset clears the plan and discards the persisted snapshot.
func (m *Manager) Reset(ctx context.Context) error {
	Reset(&m.state)
	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			return fmt.Errorf("clearing plan: %w", err)
		}
	}
	slog.Debug("plan reset")
	m.render()
	return nil
}

// Replace swaps in an externally supplied state, such as an import.
func (m *Manager) Replace(ctx context.Context, s model.PlanState) error {
	Normalize(&s)
	if s.PlanID == "" && !s.IsEmpty() {
		s.PlanID = m.newID()
	}
	prev := m.State()
	m.state = s
	return m.commit(ctx, prev)
}

// Save persists the current state without changing it.
func (m *Manager) Save(ctx context.Context) error {
	if m.store == nil || m.state.IsEmpty() {
		return nil
	}
	return m.persist(ctx)
}

// commit persists and renders the mutated state. A failed save restores prev.
func (m *Manager) commit(ctx context.Context, prev model.PlanState) error {
	m.state.UpdatedAt = m.now().UTC()
	if m.store != nil {
		if err := m.persist(ctx); err != nil {
			m.state = prev
			return err
		}
	}
	m.render()
	return nil
}

func (m *Manager) persist(ctx context.Context) error {
	if err := m.store.Save(ctx, m.State()); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

func (m *Manager) render() {
	m.renderer.Render(m.State(), m.Progress())
}
