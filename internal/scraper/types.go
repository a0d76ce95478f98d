package scraper

// Rule описывает, как достать имена элементов из одной страницы
type Rule struct {
	// CSS-селектор узлов-кандидатов
	Selector string `yaml:"selector"`
	// Если задан, учитываются только узлы, чей id начинается с этого префикса
	IDPrefix string `yaml:"id_prefix"`
	// Глубина спуска по первым дочерним узлам до текстового листа
	TextDepth int `yaml:"text_depth"`
}

// Extraction результат применения правила к документу
type Extraction struct {
	Names    []string
	Matched  int // узлы, найденные селектором
	Skipped  int // узлы, отброшенные по префиксу id
	Rejected int // узлы без текста или с недопустимым именем
}

var (
	// W3CRule: моноширинный текст в заголовках строк таблицы элементов
	W3CRule = Rule{
		Selector:  `[scope="row"] code`,
		TextDepth: 1,
	}

	// WHATWGRule: страница индексов перечисляет элементы, атрибуты и интерфейсы
	// в одинаковых таблицах, элементы отличаются только префиксом id.
	// Имя вложено в дополнительную ссылку, отсюда глубина 2.
	WHATWGRule = Rule{
		Selector:  "tbody th code",
		IDPrefix:  "elements-3:",
		TextDepth: 2,
	}
)
