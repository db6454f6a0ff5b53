// Command submissions lista os cadastros mais recentes no terminal.
//
//	go run ./cmd/submissions -n 20
//	go run ./cmd/submissions -hash-password 'nova senha'   # gera o ADMIN_PASSWORD_HASH
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"malaria-intake/internal/config"
	"malaria-intake/internal/models"
	"malaria-intake/internal/store"
	"malaria-intake/pkg/utils"
)

func main() {
	limit := flag.String("n", "20", "quantidade de cadastros (1 a 200)")
	hashPassword := flag.String("hash-password", "", "gera o hash bcrypt para ADMIN_PASSWORD_HASH e sai")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := utils.HashPassword(*hashPassword)
		if err != nil {
			color.Red("Erro ao gerar hash: %v", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if err := godotenv.Load(); err != nil {
		color.Yellow("Aviso: arquivo .env não encontrado")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var app *firebase.App
	if cfg.StoreDriver == config.DriverFirestore {
		fbApp, err := config.NewFirebaseApp(ctx, cfg)
		if err != nil {
			color.Red("Erro ao inicializar o Firebase: %v", err)
			os.Exit(1)
		}
		app = fbApp
	}

	subStore, closeStore, err := store.Open(ctx, cfg, app)
	if err != nil {
		color.Red("Erro ao abrir o banco: %v", err)
		os.Exit(1)
	}
	defer closeStore()

	subs, err := subStore.List(ctx, listLimit(*limit))
	if err != nil {
		color.Red("Erro ao listar cadastros: %v", err)
		os.Exit(1)
	}

	color.Cyan("\n=== Cadastros em %s ===", subStore.CollectionPath())
	renderTable(subs)
	color.Green("%d cadastro(s)", len(subs))
}

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// listLimit aplica a mesma regra do ?limit= da API admin
func listLimit(raw string) int {
	return utils.ParseLimit(raw, defaultListLimit, maxListLimit)
}

func renderTable(subs []*models.Submission) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"UID", "Nome", "Tipo", "Diagnóstico", "Cidade/UF", "Orientações", "Viagem", "Criado em"})

	for _, sub := range subs {
		table.Append(submissionRow(sub))
	}

	table.Render()
}

func submissionRow(sub *models.Submission) []string {
	created := "-"
	if !sub.CreatedAt.IsZero() {
		created = sub.CreatedAt.Local().Format("02/01/2006 15:04")
	}

	place := sub.Cidade
	if sub.Estado != "" {
		place = fmt.Sprintf("%s/%s", sub.Cidade, sub.Estado)
	}

	return []string{
		sub.UID,
		sub.NomeCompleto,
		sub.TipoMalaria,
		sub.DataDiagnostico,
		place,
		answerLabel(sub.RecebeuOrientacoes),
		answerLabel(sub.ViajouAreaRisco),
		created,
	}
}

func answerLabel(t models.TriState) string {
	switch t {
	case models.TriTrue:
		return "Sim"
	case models.TriFalse:
		return "Não"
	default:
		return "-"
	}
}
