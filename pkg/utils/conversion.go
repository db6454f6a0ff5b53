package utils

import "strconv"

// ParseLimit lê o ?limit= da URL. Inválido ou <= 0 vira o padrão; acima do máximo é cortado.
func ParseLimit(str string, defaultValue, max int) int {
	val, err := strconv.Atoi(str)
	if err != nil || val <= 0 {
		return defaultValue
	}
	if val > max {
		return max
	}
	return val
}
