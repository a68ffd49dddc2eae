// Базовые типы — универсальный язык общения с моделями.
package llm

// Role — роль участника диалога.
type Role string

// Роли в формате chat-completions API.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall — запрос модели на вызов инструмента.
//
// Args — сырой JSON с аргументами, как его прислала модель.
// Контракт "Raw In, String Out": парсинг аргументов — забота инструмента.
type ToolCall struct {
	ID   string // Идентификатор вызова (для привязки результата к запросу)
	Name string // Имя инструмента из каталога
	Args string // Сырой JSON с аргументами
}

// Message — одно сообщение диалога.
//
// Для Role == RoleTool заполняются Name и ToolCallID, Content содержит
// текстовый результат инструмента. Для ответа модели с запросом вызова
// инструментов заполняется ToolCalls.
type Message struct {
	Role       Role
	Content    string
	Name       string     // Имя инструмента (только для RoleTool)
	ToolCallID string     // ID вызова, к которому относится результат
	ToolCalls  []ToolCall // Вызовы, запрошенные моделью
}
