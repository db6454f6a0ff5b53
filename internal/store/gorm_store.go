package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"malaria-intake/internal/models"
)

// submissionRow é a versão SQL do documento (STORE_DRIVER=mysql).
// Campos vindos do formulário são TEXT: o handler não limita tamanho e o
// modo estrito do MySQL recusaria valores maiores que a coluna.
type submissionRow struct {
	UID            string `gorm:"primaryKey;size:64"`
	CollectionPath string `gorm:"size:255;index;not null"`

	NomeCompleto   string `gorm:"type:text"`
	Email          string `gorm:"type:text"`
	DataNascimento string `gorm:"type:text"`
	Sexo           string `gorm:"type:text"`
	CorRaca        string `gorm:"type:text"`
	Escolaridade   string `gorm:"type:text"`
	Contato        string `gorm:"type:text"`
	CPF            string `gorm:"column:cpf;type:text"`

	CEP         string `gorm:"column:cep;type:text"`
	Cidade      string `gorm:"type:text"`
	Estado      string `gorm:"type:text"`
	Endereco    string `gorm:"type:text"`
	Numero      string `gorm:"type:text"`
	Complemento string `gorm:"type:text"`

	TipoMalaria        string   `gorm:"type:text"`
	DataDiagnostico    string   `gorm:"type:text"`
	UnidadeAtendimento string   `gorm:"type:text"`
	Medicacao          []string `gorm:"serializer:json;type:json"`
	RecebeuOrientacoes *bool
	ViajouAreaRisco    *bool

	Comorbidades []string `gorm:"serializer:json;type:json"`

	Consentido bool      `gorm:"not null"`
	ProviderID string    `gorm:"size:50"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (submissionRow) TableName() string {
	return "submissions"
}

type GormStore struct {
	db   *gorm.DB
	path string
}

func NewGormStore(db *gorm.DB, path string) *GormStore {
	return &GormStore{db: db, path: path}
}

// AutoMigrate cria/atualiza a tabela submissions
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&submissionRow{})
}

func (s *GormStore) CollectionPath() string {
	return s.path
}

func (s *GormStore) Save(ctx context.Context, sub *models.Submission) error {
	if sub.UID == "" {
		return ErrEmptyID
	}

	row := toRow(sub, s.path)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert submission %s: %w", sub.UID, err)
	}
	sub.CreatedAt = row.CreatedAt
	return nil
}

func (s *GormStore) Get(ctx context.Context, uid string) (*models.Submission, error) {
	if uid == "" {
		return nil, ErrEmptyID
	}

	var row submissionRow
	err := s.db.WithContext(ctx).
		Where("collection_path = ? AND uid = ?", s.path, uid).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select submission %s: %w", uid, err)
	}
	return fromRow(&row), nil
}

func (s *GormStore) List(ctx context.Context, limit int) ([]*models.Submission, error) {
	var rows []submissionRow
	err := s.db.WithContext(ctx).
		Where("collection_path = ?", s.path).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]*models.Submission, 0, len(rows))
	for i := range rows {
		out = append(out, fromRow(&rows[i]))
	}
	return out, nil
}

func toRow(sub *models.Submission, path string) *submissionRow {
	return &submissionRow{
		UID:            sub.UID,
		CollectionPath: path,

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
		ProviderID: sub.ProviderID,
		CreatedAt:  sub.CreatedAt,
	}
}

func fromRow(row *submissionRow) *models.Submission {
	return &models.Submission{
		NomeCompleto:   row.NomeCompleto,
		Email:          row.Email,
		DataNascimento: row.DataNascimento,
		Sexo:           row.Sexo,
		CorRaca:        row.CorRaca,
		Escolaridade:   row.Escolaridade,
		Contato:        row.Contato,
		CPF:            row.CPF,

		CEP:         row.CEP,
		Cidade:      row.Cidade,
		Estado:      row.Estado,
		Endereco:    row.Endereco,
		Numero:      row.Numero,
		Complemento: row.Complemento,

		TipoMalaria:        row.TipoMalaria,
		DataDiagnostico:    row.DataDiagnostico,
		UnidadeAtendimento: row.UnidadeAtendimento,
		Medicacao:          nonNil(row.Medicacao),
		RecebeuOrientacoes: models.TriStateFromBool(row.RecebeuOrientacoes),
		ViajouAreaRisco:    models.TriStateFromBool(row.ViajouAreaRisco),

		Comorbidades: nonNil(row.Comorbidades),

		Consentido: row.Consentido,
		CreatedAt:  row.CreatedAt,
		UID:        row.UID,
		ProviderID: row.ProviderID,
	}
}
