package domain

// RandomNumberSpace — размер пространства значений аллокатора: [0, 100).
// Пространство маленькое, поэтому при постоянном использовании коллизии
// начинаются задолго до исчерпания лимита попыток — это врождённое
// ограничение дизайна, а не дефект реализации.
const RandomNumberSpace = 100

// RandomNumber хранит выделенное уникальное значение.
// Инвариант: Number глобально уникален среди всех сохранённых записей.
type RandomNumber struct {
	ID     int64
	Number int
}

// Validate проверяет попадание значения в допустимый диапазон.
func (n *RandomNumber) Validate() []error {
	if n.Number < 0 || n.Number >= RandomNumberSpace {
		return []error{ErrRandomNumberOutOfRange}
	}
	return nil
}
