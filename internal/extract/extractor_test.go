package extract

import (
	"testing"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return NewExtractor(
		WithClock(func() time.Time { return refTime }),
		WithIDGenerator(func() string { return "evt-1" }),
		WithDateFinder(NewDateFinder(time.UTC)),
	)
}

func TestExtract_MeetingScenario(t *testing.T) {
	p := newTestExtractor().Extract("Встреча 25 декабря в 15:00 в «Лофт Сити» для подрядчиков")

	assert.Equal(t, "evt-1", p.EventID)
	assert.Equal(t, "Лофт Сити", p.Title)
	assert.Contains(t, p.Place, "Лофт Сити")
	assert.Equal(t, "подрядчиков", p.Audience)
	assert.Equal(t, "2025-12-25", p.Date)
	assert.Equal(t, "15:00", p.Time)

	contractors, ok := p.Sections.Get(domain.SectionContractors)
	require.True(t, ok)
	assert.Contains(t, contractors.Notes, "Встреча 25 декабря в 15:00 в «Лофт Сити» для подрядчиков")

	venue, ok := p.Sections.Get(domain.SectionVenue)
	require.True(t, ok)
	assert.Len(t, venue.Notes, 1)

	assert.Empty(t, p.History)
	assert.NotNil(t, p.History)
	assert.Equal(t, refTime, p.CreatedAt.Time)
}

func TestExtract_NoSignalsYieldsPlaceholders(t *testing.T) {
	p := newTestExtractor().Extract("   \n\t  ")

	assert.Equal(t, domain.UntitledProject, p.Title)
	assert.Empty(t, p.Date)
	assert.Empty(t, p.Time)
	assert.Empty(t, p.Place)
	assert.Empty(t, p.Audience)
	assert.Equal(t, domain.SectionNames(), p.Sections.Names())
	for _, name := range p.Sections.Names() {
		s, _ := p.Sections.Get(name)
		assert.Empty(t, s.Notes, name)
	}
}

func TestExtract_KeepsRawTextAsNotes(t *testing.T) {
	raw := "  Корпоратив. Банкет на 50 человек  "
	p := newTestExtractor().Extract(raw)
	assert.Equal(t, raw, p.Notes)
}

func TestExtract_DateWithoutClockLeavesTimeEmpty(t *testing.T) {
	p := newTestExtractor().Extract("Конференция 3 марта, площадка уточняется")
	assert.Equal(t, "2026-03-03", p.Date)
	assert.Empty(t, p.Time)
}

func TestExtract_WeekdayDate(t *testing.T) {
	p := newTestExtractor().Extract("Корпоратив Иванов в пятницу в 19:00")
	assert.Equal(t, "2025-11-07", p.Date)
	assert.Equal(t, "19:00", p.Time)
}

func TestExtract_GeneratesDistinctIDsByDefault(t *testing.T) {
	e := NewExtractor()
	a := e.Extract("one")
	b := e.Extract("two")
	assert.Len(t, a.EventID, 32)
	assert.NotEqual(t, a.EventID, b.EventID)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "guillemets", in: `Ужин «Новый год 2026» в ресторане`, want: "Новый год 2026"},
		{name: "straight quotes", in: `Форум "Digital Day" для партнёров`, want: "Digital Day"},
		{name: "curly quotes", in: `Лекция “Go в продакшене”. Зал 2`, want: "Go в продакшене"},
		{name: "first sentence", in: "Запуск продукта в офисе. Нужен фуршет", want: "Запуск продукта в офисе"},
		{name: "ten words max", in: "один два три четыре пять шесть семь восемь девять десять одиннадцать", want: "один два три четыре пять шесть семь восемь девять десять"},
		{name: "empty first sentence", in: ". потом текст", want: domain.UntitledProject},
		{name: "blank", in: "", want: domain.UntitledProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.in))
		})
	}
}

func TestExtractPlace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "in", in: "Встреча в Лофт Сити. Начало вечером", want: "Лофт Сити"},
		{name: "address", in: "Сбор по адресу Тверская 1; вход со двора", want: "Тверская 1"},
		{name: "skips time", in: "Старт в 19:00 на крыше отеля", want: "крыше отеля"},
		{name: "only time", in: "Старт в 19:00", want: "19:00"},
		{name: "inside word ignored", in: "Иванов придёт", want: ""},
		{name: "none", in: "Просто текст", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlace(tt.in))
		})
	}
}

func TestExtractAudience(t *testing.T) {
	assert.Equal(t, "партнёров и клиентов", ExtractAudience("Вечер для партнёров и клиентов. Дресс-код"))
	assert.Equal(t, "", ExtractAudience("Вечер без аудитории"))
}

func TestClassifySentences_MultipleCategories(t *testing.T) {
	ss := ClassifySentences("Нужен звук и фотограф! Договор с охраной?\nПросто строка")

	stage, _ := ss.Get(domain.SectionStage)
	media, _ := ss.Get(domain.SectionMedia)
	docs, _ := ss.Get(domain.SectionDocuments)
	security, _ := ss.Get(domain.SectionSecurity)
	catering, _ := ss.Get(domain.SectionCatering)

	assert.Equal(t, []string{"Нужен звук и фотограф"}, stage.Notes)
	assert.Equal(t, []string{"Нужен звук и фотограф"}, media.Notes)
	assert.Equal(t, []string{"Договор с охраной"}, docs.Notes)
	assert.Equal(t, []string{"Договор с охраной"}, security.Notes)
	assert.Empty(t, catering.Notes)
}

func TestClassifySentences_CaseInsensitive(t *testing.T) {
	ss := ClassifySentences("БАНКЕТ на террасе")
	catering, _ := ss.Get(domain.SectionCatering)
	assert.Equal(t, []string{"БАНКЕТ на террасе"}, catering.Notes)
}
