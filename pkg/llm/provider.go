// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — абстракция над LLM API.
//
// Все адаптеры (OpenAI-совместимые API, прокси и т.д.) реализуют этот
// интерфейс. Оркестратор не знает о конкретном провайдере.
type Provider interface {
	// Generate принимает контекст и историю сообщений.
	// Возвращает ответ модели в унифицированном формате Message.
	// tools — опциональный список определений функций
	// (если провайдер поддерживает Function Calling, ожидается
	// tools[0] = []tools.ToolDefinition).
	Generate(ctx context.Context, messages []Message, tools ...any) (Message, error)
}
