// Package codec кодирует и разбирает упакованные строки деталей
// приборного осмотра вида "name1:value1, name2:value2".
//
// Разбор намеренно снисходительный: это восстановление ранее
// записанных нами же строк, а не валидация внешнего ввода. Отсутствующее
// поле даёт пустую строку / false, ошибок разбор не возвращает.
package codec

import "strings"

// sep разделяет пары в упакованной строке.
const sep = ", "

// Field — одна пара имя/значение. Порядок полей фиксирован для каждой
// категории и сохраняется при кодировании.
type Field struct {
	Name  string
	Value string
}

// Encode собирает упакованную строку из упорядоченного набора полей.
func Encode(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+":"+f.Value)
	}
	return strings.Join(parts, sep)
}

// Lookup извлекает значение поля name из упакованной строки.
// Значение читается от "<name>:" до следующего ", " либо до конца строки.
// Если поля нет — возвращается "".
func Lookup(s, name string) string {
	marker := name + ":"
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(marker):]
	if end := strings.Index(rest, sep); end >= 0 {
		return rest[:end]
	}
	return rest
}

// LookupBool извлекает булево поле: любым значением, кроме "true",
// считается false.
func LookupBool(s, name string) bool {
	return Lookup(s, name) == "true"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// trimUnit снимает фиксированный суффикс единицы измерения, если он есть.
func trimUnit(s, unit string) string {
	return strings.TrimSuffix(s, unit)
}

// JoinItemName собирает составной ключ строки осмотра "<категория>_<помещение>".
func JoinItemName(category, location string) string {
	return category + "_" + location
}

// SplitItemName разбирает составной ключ. Категория подбирается по списку
// известных категорий, потому что имя категории само может содержать "_"
// (floor_level). Незнакомый ключ режется по первому "_", ключ без
// разделителя даёт пустое помещение.
func SplitItemName(itemName string) (category, location string) {
	for _, c := range knownCategories {
		if itemName == c {
			return c, ""
		}
		if strings.HasPrefix(itemName, c+"_") {
			return c, itemName[len(c)+1:]
		}
	}
	category, location, _ = strings.Cut(itemName, "_")
	return category, location
}
