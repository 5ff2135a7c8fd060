package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/content"
	"github.com/abhisek/qrayti/internal/monitor"
)

func TestWriteOutline(t *testing.T) {
	svc := api.NewMockService(api.MockResponse{Sections: []api.SummarySection{
		{
			Title:           "Les obligations",
			Content:         "Une obligation est un lien de droit.",
			KeyTerms:        []api.KeyTerm{{Term: "Créancier", Definition: "Titulaire du droit"}},
			EssentialPoints: []string{"Le contrat fait la loi des parties"},
		},
		{Title: "La responsabilité", Content: "Tout fait dommageable oblige à réparation."},
	}})

	var out bytes.Buffer
	err := writeOutline(context.Background(), svc, content.Demo(), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Cours_Droit_Civil_Marocain.pdf (12 pages)")
	assert.Contains(t, text, "1. Les obligations")
	assert.Contains(t, text, "2. La responsabilité")
	assert.Contains(t, text, "Créancier: Titulaire du droit")
	require.Len(t, svc.Calls, 1)
	assert.Equal(t, content.Demo().Content, svc.Calls[0].Content)
}

func TestWriteOutline_Failure(t *testing.T) {
	svc := api.NewMockService(api.MockResponse{Err: &api.ErrTimeout{Op: api.OpGenerateSummary, After: time.Second}})

	var out bytes.Buffer
	err := writeOutline(context.Background(), svc, content.Demo(), &out)
	var timeout *api.ErrTimeout
	assert.True(t, errors.As(err, &timeout))
	assert.Empty(t, out.String())
}

func TestWriteOutline_NoSections(t *testing.T) {
	svc := api.NewMockService(api.MockResponse{Sections: nil})

	var out bytes.Buffer
	err := writeOutline(context.Background(), svc, content.Demo(), &out)
	assert.ErrorContains(t, err, "no sections generated")
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	printStatus(&out, monitor.Status{
		State:     monitor.Ready,
		Message:   monitor.MessageReady,
		ModelType: "qwen2.5",
		Seq:       1,
	})
	assert.Equal(t, "[ready] Backend is ready! (model: qwen2.5)\n", out.String())

	out.Reset()
	printStatus(&out, monitor.Status{})
	assert.Contains(t, out.String(), "[unchecked]")
}

func newFlagCmd(t *testing.T, apiURL string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("api-url", "", "")
	require.NoError(t, c.Flags().Set("api-url", apiURL))
	return c
}

func TestResolveConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("QRAYTI_API_URL", "http://env.example:9000")

	cfg, err := resolveConfig(newFlagCmd(t, "http://flag.example:8000"))
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example:8000", cfg.BaseURL)
}

func TestResolveConfig_EnvWithoutFlag(t *testing.T) {
	t.Setenv("QRAYTI_API_URL", "http://env.example:9000")

	cfg, err := resolveConfig(newFlagCmd(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "http://env.example:9000", cfg.BaseURL)
}

func TestResolveConfig_RejectsBadURL(t *testing.T) {
	t.Setenv("QRAYTI_API_URL", "not a url")

	_, err := resolveConfig(newFlagCmd(t, ""))
	assert.Error(t, err)
}
