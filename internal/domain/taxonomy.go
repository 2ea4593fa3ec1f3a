package domain

// Category names. The set is closed; documents always carry every one of
// them under "sections", in this order.
const (
	SectionContractors = "подрядчики"
	SectionVenue       = "площадка"
	SectionPrint       = "типография/брендирование"
	SectionStage       = "сцена/звук/свет"
	SectionProgram     = "программа/сценарий"
	SectionHosts       = "ведущие/артисты"
	SectionCatering    = "кейтеринг"
	SectionMedia       = "фото/видео"
	SectionSecurity    = "безопасность"
	SectionLogistics   = "логистика"
	SectionPR          = "PR/соцсети"
	SectionDocuments   = "документы/сметы"
	SectionDeadlines   = "дедлайны"
)

// Category pairs a section name with the lower-case keyword stems that file
// a sentence under it.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is the fixed list of event-planning categories.
var Taxonomy = []Category{
	{Name: SectionContractors, Keywords: []string{"подряд", "поставщик", "контраг"}},
	{Name: SectionVenue, Keywords: []string{"площадк", "место", "зал", "лофт"}},
	{Name: SectionPrint, Keywords: []string{"типограф", "бренд", "печать"}},
	{Name: SectionStage, Keywords: []string{"свет", "звук", "сцен"}},
	{Name: SectionProgram, Keywords: []string{"сценар", "программ", "тайминг"}},
	{Name: SectionHosts, Keywords: []string{"ведущ", "артист", "спикер"}},
	{Name: SectionCatering, Keywords: []string{"кейтер", "фуршет", "еда", "банкет"}},
	{Name: SectionMedia, Keywords: []string{"фото", "видео", "оператор"}},
	{Name: SectionSecurity, Keywords: []string{"охран", "безопас"}},
	{Name: SectionLogistics, Keywords: []string{"логист", "транспорт", "доставка"}},
	{Name: SectionPR, Keywords: []string{"пр", "smm", "соцсет", "медиа"}},
	{Name: SectionDocuments, Keywords: []string{"договор", "смет", "акт", "кп"}},
	{Name: SectionDeadlines, Keywords: []string{"дедлайн", "срок", "до "}},
}

// SectionNames returns the category names in taxonomy order.
func SectionNames() []string {
	names := make([]string, len(Taxonomy))
	for i, c := range Taxonomy {
		names[i] = c.Name
	}
	return names
}
