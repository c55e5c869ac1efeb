package service

// Подписи по умолчанию для записей календаря. Если заголовок не задан,
// берется подпись по типу, иначе сам тип как есть.
var entryTypeLabels = map[string]string{
	"shift":    "Смена",
	"off":      "Выходной",
	"vacation": "Отпуск",
	"sick":     "Больничный",
	"trip":     "Командировка",
	"other":    "Другое",
}

// DefaultTitle возвращает подпись для типа записи
func DefaultTitle(entryType string) string {
	if label, ok := entryTypeLabels[entryType]; ok {
		return label
	}
	return entryType
}
