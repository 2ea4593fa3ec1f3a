package intelligence

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
)

// ErrInvalidChange marks a pending change that cannot be applied. It means
// the session state is corrupt, not that the user typed something odd.
var ErrInvalidChange = errors.New("invalid pending change")

// Confirm applies a staged change to p and returns its human-readable
// summary.
func (e *Engine) Confirm(p *domain.Project, pending *domain.PendingChange) (string, error) {
	return ApplyConfirmed(p, pending, e.now())
}

// ApplyConfirmed writes pending.Value at pending.Path inside the target
// section, creating the section and any intermediate objects, and records a
// confirm_change history entry.
func ApplyConfirmed(p *domain.Project, pending *domain.PendingChange, at time.Time) (string, error) {
	if err := pending.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}
	if err := p.Section(pending.Section).SetPath(pending.Path, pending.Value); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}
	summary := pending.Summary
	if summary == "" {
		summary = defaultChangeSummary
	}
	p.Record(domain.ActionConfirmChange, summary, at)
	return summary, nil
}
