package models

import (
	"net/url"
	"strings"
	"time"
)

const (
	// ProviderDirect marca o cadastro como feito direto pelo formulário (e não via Google)
	ProviderDirect = "cadastro.direto"

	OtherMedicationFlag   = "Outra_Selecionada"
	OtherMedicationPrefix = "Outra: "

	invalidUTF8Replacement = "\uFFFD"
)

// Submission é o registro salvo a cada envio do formulário
type Submission struct {
	// Identificação e contato
	NomeCompleto   string `json:"nomeCompleto"`
	Email          string `json:"email"`
	DataNascimento string `json:"dataNascimento"`
	Sexo           string `json:"sexo"`
	CorRaca        string `json:"corRaca"`
	Escolaridade   string `json:"escolaridade"`
	Contato        string `json:"contato"`
	CPF            string `json:"cpf"`

	// Endereço
	CEP         string `json:"cep"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	Endereco    string `json:"endereco"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`

	// Diagnóstico e tratamento
	TipoMalaria        string   `json:"tipoMalaria"`
	DataDiagnostico    string   `json:"dataDiagnostico"`
	UnidadeAtendimento string   `json:"unidadeAtendimento"`
	Medicacao          []string `json:"medicacao"`
	RecebeuOrientacoes TriState `json:"recebeuOrientacoes"`
	ViajouAreaRisco    TriState `json:"viajouAreaRisco"`

	Comorbidades []string `json:"comorbidades"`

	// Metadados
	Consentido bool      `json:"consentido"`
	CreatedAt  time.Time `json:"createdAt"` // preenchido pelo banco
	UID        string    `json:"uid"`
	ProviderID string    `json:"providerId"`
}

// NewSubmissionFromForm monta o registro a partir dos campos do formulário.
// Não valida nada: campo ausente vira string vazia, checkbox sem seleção vira lista vazia.
// Bytes UTF-8 inválidos viram U+FFFD (o Firestore recusa strings inválidas).
func NewSubmissionFromForm(form url.Values, uid string) *Submission {
	medicacao := listOf(form["medicacao"])
	if field(form, "medicacao_outra_flag") == OtherMedicationFlag {
		if desc := field(form, "medicacaoOutraDescricao"); desc != "" {
			medicacao = append(medicacao, OtherMedicationPrefix+desc)
		}
	}

	return &Submission{
		NomeCompleto:   field(form, "nomeCompleto"),
		Email:          field(form, "email"),
		DataNascimento: field(form, "dataNascimento"),
		Sexo:           field(form, "sexo"),
		CorRaca:        field(form, "corRaca"),
		Escolaridade:   field(form, "escolaridade"),
		Contato:        field(form, "contato"),
		CPF:            field(form, "cpf"),

		CEP:         field(form, "cep"),
		Cidade:      field(form, "cidade"),
		Estado:      field(form, "estado"),
		Endereco:    field(form, "endereco"),
		Numero:      field(form, "numero"),
		Complemento: field(form, "complemento"),

		TipoMalaria:        field(form, "tipoMalaria"),
		DataDiagnostico:    field(form, "dataDiagnostico"),
		UnidadeAtendimento: field(form, "unidadeAtendimento"),
		Medicacao:          medicacao,
		RecebeuOrientacoes: ParseSimNao(field(form, "recebeuOrientacoes")),
		ViajouAreaRisco:    ParseSimNao(field(form, "viajouAreaRisco")),

		Comorbidades: listOf(form["comorbidade"]),

		Consentido: false,
		UID:        uid,
		ProviderID: ProviderDirect,
	}
}

func field(form url.Values, key string) string {
	return cleanUTF8(form.Get(key))
}

// listOf copia os valores e garante lista não-nil
func listOf(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, cleanUTF8(v))
	}
	return out
}

func cleanUTF8(v string) string {
	return strings.ToValidUTF8(v, invalidUTF8Replacement)
}
