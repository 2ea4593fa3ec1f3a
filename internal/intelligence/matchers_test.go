package intelligence

import (
	"testing"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMatchHostTimeChange(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOK bool
		want   string
	}{
		{name: "change verb", text: "измени тайминг выхода ведущего на 21:00", wantOK: true, want: "21:00"},
		{name: "swap verb", text: "Поменяй ведущую на 9:15", wantOK: true, want: "9:15"},
		{name: "no time", text: "измени ведущего", wantOK: false},
		{name: "no role", text: "измени начало на 21:00", wantOK: false},
		{name: "no verb", text: "ведущий в 21:00", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchHostTimeChange(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, IntentHostTimeChange, got.Name)
				assert.Equal(t, tt.want, got.Value)
			}
		})
	}
}

func TestMatchContractorAdd(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOK bool
		want   string
	}{
		{name: "colon", text: "добавь подрядчика: типография Иванов", wantOK: true, want: "типография Иванов"},
		{name: "dash", text: "Добавить подрядчик - кейтеринг «Вкус»", wantOK: true, want: "кейтеринг «Вкус»"},
		{name: "empty description", text: "добавь подрядчика.", wantOK: true, want: domain.UnnamedContractor},
		{name: "no add verb", text: "подрядчик Иванов", wantOK: false},
		{name: "no contractor", text: "добавь фотографа", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchContractorAdd(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, IntentContractorAdd, got.Name)
				assert.Equal(t, tt.want, got.Value)
			}
		})
	}
}
