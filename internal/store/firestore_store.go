package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"malaria-intake/internal/models"
)

// firestoreDoc é o formato do documento em artifacts/{APP_ID}/users/{uid}
type firestoreDoc struct {
	NomeCompleto   string `firestore:"nomeCompleto"`
	Email          string `firestore:"email"`
	DataNascimento string `firestore:"dataNascimento"`
	Sexo           string `firestore:"sexo"`
	CorRaca        string `firestore:"corRaca"`
	Escolaridade   string `firestore:"escolaridade"`
	Contato        string `firestore:"contato"`
	CPF            string `firestore:"cpf"`

	CEP         string `firestore:"cep"`
	Cidade      string `firestore:"cidade"`
	Estado      string `firestore:"estado"`
	Endereco    string `firestore:"endereco"`
	Numero      string `firestore:"numero"`
	Complemento string `firestore:"complemento"`

	TipoMalaria        string   `firestore:"tipoMalaria"`
	DataDiagnostico    string   `firestore:"dataDiagnostico"`
	UnidadeAtendimento string   `firestore:"unidadeAtendimento"`
	Medicacao          []string `firestore:"medicacao"`
	RecebeuOrientacoes *bool    `firestore:"recebeuOrientacoes"`
	ViajouAreaRisco    *bool    `firestore:"viajouAreaRisco"`

	Comorbidades []string `firestore:"comorbidades"`

	Consentido bool `firestore:"consentido"`

	// zero value -> o Firestore preenche com o timestamp do servidor
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp"`
	UID        string    `firestore:"uid"`
	ProviderID string    `firestore:"providerId"`
}

type FirestoreStore struct {
	client *firestore.Client
	path   string
}

// NewFirestoreStore recebe o client já criado (um só por processo) e o caminho da coleção
func NewFirestoreStore(client *firestore.Client, path string) (*FirestoreStore, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	if client.Collection(path) == nil {
		return nil, fmt.Errorf("invalid collection path %q", path)
	}
	return &FirestoreStore{client: client, path: path}, nil
}

func (s *FirestoreStore) CollectionPath() string {
	return s.path
}

func (s *FirestoreStore) Save(ctx context.Context, sub *models.Submission) error {
	if sub.UID == "" {
		return ErrEmptyID
	}

	doc := toFirestoreDoc(sub)
	if _, err := s.client.Collection(s.path).Doc(sub.UID).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", s.path, sub.UID, err)
	}
	return nil
}

func (s *FirestoreStore) Get(ctx context.Context, uid string) (*models.Submission, error) {
	if uid == "" {
		return nil, ErrEmptyID
	}

	snap, err := s.client.Collection(s.path).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %s/%s: %w", s.path, uid, err)
	}

	var doc firestoreDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", uid, err)
	}
	return fromFirestoreDoc(&doc), nil
}

func (s *FirestoreStore) List(ctx context.Context, limit int) ([]*models.Submission, error) {
	snaps, err := s.client.Collection(s.path).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore list %s: %w", s.path, err)
	}

	out := make([]*models.Submission, 0, len(snaps))
	for _, snap := range snaps {
		var doc firestoreDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", snap.Ref.ID, err)
		}
		out = append(out, fromFirestoreDoc(&doc))
	}
	return out, nil
}

func toFirestoreDoc(sub *models.Submission) *firestoreDoc {
	return &firestoreDoc{
		NomeCompleto:   sub.NomeCompleto,
		Email:          sub.Email,
		DataNascimento: sub.DataNascimento,
		Sexo:           sub.Sexo,
		CorRaca:        sub.CorRaca,
		Escolaridade:   sub.Escolaridade,
		Contato:        sub.Contato,
		CPF:            sub.CPF,

		CEP:         sub.CEP,
		Cidade:      sub.Cidade,
		Estado:      sub.Estado,
		Endereco:    sub.Endereco,
		Numero:      sub.Numero,
		Complemento: sub.Complemento,

		TipoMalaria:        sub.TipoMalaria,
		DataDiagnostico:    sub.DataDiagnostico,
		UnidadeAtendimento: sub.UnidadeAtendimento,
		Medicacao:          nonNil(sub.Medicacao),
		RecebeuOrientacoes: sub.RecebeuOrientacoes.Bool(),
		ViajouAreaRisco:    sub.ViajouAreaRisco.Bool(),

		Comorbidades: nonNil(sub.Comorbidades),

		Consentido: sub.Consentido,
		CreatedAt:  sub.CreatedAt,
		UID:        sub.UID,
		ProviderID: sub.ProviderID,
	}
}

func fromFirestoreDoc(doc *firestoreDoc) *models.Submission {
	return &models.Submission{
		NomeCompleto:   doc.NomeCompleto,
		Email:          doc.Email,
		DataNascimento: doc.DataNascimento,
		Sexo:           doc.Sexo,
		CorRaca:        doc.CorRaca,
		Escolaridade:   doc.Escolaridade,
		Contato:        doc.Contato,
		CPF:            doc.CPF,

		CEP:         doc.CEP,
		Cidade:      doc.Cidade,
		Estado:      doc.Estado,
		Endereco:    doc.Endereco,
		Numero:      doc.Numero,
		Complemento: doc.Complemento,

		TipoMalaria:        doc.TipoMalaria,
		DataDiagnostico:    doc.DataDiagnostico,
		UnidadeAtendimento: doc.UnidadeAtendimento,
		Medicacao:          nonNil(doc.Medicacao),
		RecebeuOrientacoes: models.TriStateFromBool(doc.RecebeuOrientacoes),
		ViajouAreaRisco:    models.TriStateFromBool(doc.ViajouAreaRisco),

		Comorbidades: nonNil(doc.Comorbidades),

		Consentido: doc.Consentido,
		CreatedAt:  doc.CreatedAt,
		UID:        doc.UID,
		ProviderID: doc.ProviderID,
	}
}
