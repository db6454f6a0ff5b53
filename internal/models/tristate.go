package models

import "encoding/json"

// TriState separa "não respondido" de "respondeu não"
type TriState int

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

// Literais do formulário para as perguntas de sim/não
const (
	AnswerYes = "sim"
	AnswerNo  = "nao"
)

// ParseSimNao converte o valor do radio button: "sim" -> TriTrue, "nao" -> TriFalse, resto -> TriUnknown
func ParseSimNao(val string) TriState {
	switch val {
	case AnswerYes:
		return TriTrue
	case AnswerNo:
		return TriFalse
	default:
		return TriUnknown
	}
}

// TriStateFromBool é o caminho inverso, usado na leitura do banco (nil = desconhecido)
func TriStateFromBool(b *bool) TriState {
	if b == nil {
		return TriUnknown
	}
	if *b {
		return TriTrue
	}
	return TriFalse
}

// Bool devolve o valor persistido: true, false ou nil
func (t TriState) Bool() *bool {
	switch t {
	case TriTrue:
		v := true
		return &v
	case TriFalse:
		v := false
		return &v
	default:
		return nil
	}
}

func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON grava true/false/null
func (t TriState) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Bool())
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*t = TriStateFromBool(b)
	return nil
}
