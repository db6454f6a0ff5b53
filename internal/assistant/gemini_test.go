package assistant

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Olá, "), genai.Text("tudo bem?")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignorado")}}},
		},
	}
	assert.Equal(t, "Olá, tudo bem?", firstText(resp))
}
