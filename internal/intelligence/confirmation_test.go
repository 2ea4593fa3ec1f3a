package intelligence

import (
	"testing"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm_RejectsMalformedChange(t *testing.T) {
	tests := []struct {
		name    string
		pending *domain.PendingChange
		wantErr error
	}{
		{name: "nil", pending: nil, wantErr: domain.ErrChangeMissingSection},
		{name: "no section", pending: &domain.PendingChange{Path: []string{"a"}}, wantErr: domain.ErrChangeMissingSection},
		{name: "no path", pending: &domain.PendingChange{Section: domain.SectionVenue}, wantErr: domain.ErrChangeMissingPath},
		{name: "reserved key", pending: &domain.PendingChange{Section: domain.SectionVenue, Path: []string{"notes"}}, wantErr: domain.ErrReservedKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject()
			_, err := newTestEngine().Confirm(p, tt.pending)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidChange)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, p.History)
		})
	}
}

func TestConfirm_CreatesSectionAndIntermediateLevels(t *testing.T) {
	p := &domain.Project{EventID: "p2"}

	summary, err := newTestEngine().Confirm(p, &domain.PendingChange{
		Section: "бюджет",
		Path:    []string{"смета", "итого"},
		Value:   domain.String("100000"),
	})

	require.NoError(t, err)
	assert.Equal(t, "обновление", summary)
	s, ok := p.Sections.Get("бюджет")
	require.True(t, ok)
	assert.NotNil(t, s.Notes)
	got, ok := s.Lookup([]string{"смета", "итого"})
	require.True(t, ok)
	assert.Equal(t, "100000", got.Text())
	require.Len(t, p.History, 1)
	assert.Equal(t, "обновление", p.History[0].Details)
}

func TestConfirm_OverwritesExistingValue(t *testing.T) {
	p := newProject()
	e := newTestEngine()
	change := &domain.PendingChange{Section: domain.SectionProgram, Path: HostTimePath, Value: domain.String("18:00"), Summary: "a"}
	_, err := e.Confirm(p, change)
	require.NoError(t, err)

	change.Value = domain.String("19:00")
	_, err = e.Confirm(p, change)
	require.NoError(t, err)

	program, _ := p.Sections.Get(domain.SectionProgram)
	got, _ := program.Lookup(HostTimePath)
	assert.Equal(t, "19:00", got.Text())
	assert.Len(t, p.History, 2)
}
