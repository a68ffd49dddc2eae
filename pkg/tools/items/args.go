package items

import (
	"fmt"
	"strconv"
	"strings"
)

// looseBool принимает и JSON bool, и строку "true"/"false".
//
// Внешняя схема объявляет булевы параметры строками, поэтому модель
// может прислать значение в любом из двух видов.
type looseBool bool

// UnmarshalJSON реализует гибкий парсинг булевого аргумента.
func (b *looseBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean value: %s", string(data))
	}
	*b = looseBool(v)
	return nil
}

// Bool возвращает значение как обычный bool.
func (b looseBool) Bool() bool {
	return bool(b)
}
