package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Config)) (*Client, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c, &hits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func fourOptionQuestions(n int) []map[string]any {
	qs := make([]map[string]any, n)
	for i := range n {
		qs[i] = map[string]any{
			"id":                i + 1,
			"question":          "Quelle est la source principale des obligations ?",
			"options":           []string{"Le contrat", "La loi", "La coutume", "La doctrine"},
			"correctIndex":      i % 4,
			"explanation":       "Le DOC énumère les sources.",
			"explanationDarija": "الظهير كيحدد المصادر.",
		}
	}
	return qs
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = ""
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API config")
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://localhost:8000/"
	c, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestHealth_Ready(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok", "model_type": "qwen2.5", "model_ready": true,
		})
	})

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "qwen2.5", status.ModelType)
	assert.True(t, status.ModelReady)
}

func TestHealth_NonSuccessIsConnectionError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "boom"})
	})

	_, err := c.Health(context.Background())
	var connErr *ErrConnection
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, http.StatusInternalServerError, connErr.Status)
	assert.Contains(t, err.Error(), c.BaseURL())
}

func TestHealth_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = url
	c, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	var connErr *ErrConnection
	require.ErrorAs(t, err, &connErr)
	assert.Zero(t, connErr.Status)
	assert.Contains(t, err.Error(), url)
	assert.Contains(t, err.Error(), "Make sure the server is running")
}

func TestHealth_MissingStatusIsInvalid(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"model_ready": true})
	})

	_, err := c.Health(context.Background())
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, OpHealth, invalid.Op)
}

func TestGenerateQuiz_FiveQuestions(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-quiz", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Le contrat est la loi des parties.", body["content"])
		assert.EqualValues(t, 5, body["num_questions"])

		writeJSON(w, http.StatusOK, map[string]any{"questions": fourOptionQuestions(5)})
	})

	qs, err := c.GenerateQuiz(context.Background(), "  Le contrat est la loi des parties.\n", 5)
	require.NoError(t, err)
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.Len(t, q.Options, 4)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, 4)
	}
	assert.Equal(t, "الظهير كيحدد المصادر.", qs[0].ExplanationDarija)
}

func TestGenerateQuiz_ZeroMeansDefault(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, DefaultNumQuestions, body["num_questions"])
		writeJSON(w, http.StatusOK, map[string]any{"questions": fourOptionQuestions(1)})
	})

	_, err := c.GenerateQuiz(context.Background(), "text", 0)
	require.NoError(t, err)
}

func TestGenerateQuiz_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		field   string
	}{
		{"empty content", "", 5, "Content"},
		{"blank content", "   \n\t", 5, "Content"},
		{"negative count", "text", -1, "NumQuestions"},
		{"too many", "text", MaxNumQuestions + 1, "NumQuestions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("unexpected request")
			})

			_, err := c.GenerateQuiz(context.Background(), tt.content, tt.n)
			var verr *ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, atomic.LoadInt32(hits))
		})
	}
}

func TestGenerateQuiz_EmptyResult(t *testing.T) {
	for _, body := range []string{`{"questions":[]}`, `{"questions":null}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			})

			_, err := c.GenerateQuiz(context.Background(), "text", 5)
			var empty *ErrEmptyResult
			require.ErrorAs(t, err, &empty)
			assert.Equal(t, "No questions generated", err.Error())
		})
	}
}

func TestGenerateQuiz_CorrectIndexOutOfRange(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"questions": []map[string]any{{
			"id": 1, "question": "Q?", "options": []string{"a", "b"}, "correctIndex": 2,
		}}})
	})

	_, err := c.GenerateQuiz(context.Background(), "text", 1)
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Err.Error(), "correctIndex 2 out of range")
}

func TestGenerateQuiz_TooFewOptions(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"questions": []map[string]any{{
			"id": 1, "question": "Q?", "options": []string{"only"}, "correctIndex": 0,
		}}})
	})

	_, err := c.GenerateQuiz(context.Background(), "text", 1)
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
}

func TestGenerateQuiz_RemoteDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": "Model not loaded yet"})
	})

	_, err := c.GenerateQuiz(context.Background(), "text", 5)
	var remote *ErrRemote
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusServiceUnavailable, remote.Status)
	assert.Equal(t, "Model not loaded yet", err.Error())
}

func TestGenerateQuiz_RemoteFallbackMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>Internal Server Error</html>"},
		{"no detail", `{"error":"x"}`},
		{"list detail", `{"detail":[{"loc":["body","content"],"msg":"field required"}]}`},
		{"blank detail", `{"detail":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tt.body))
			})

			_, err := c.GenerateQuiz(context.Background(), "text", 5)
			var remote *ErrRemote
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, "Quiz generation failed", remote.Detail)
		})
	}
}

func TestGenerateQuiz_Timeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, func(cfg *Config) {
		cfg.Timeout = 50 * time.Millisecond
	})

	start := time.Now()
	_, err := c.GenerateQuiz(context.Background(), "text", 5)
	assert.Less(t, time.Since(start), time.Second)

	var timeout *ErrTimeout
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, OpGenerateQuiz, timeout.Op)
	assert.Equal(t, 50*time.Millisecond, timeout.After)
	assert.Contains(t, err.Error(), "model is not responding")
}

func TestGenerateQuiz_CallerCancellation(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"questions": fourOptionQuestions(1)})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GenerateQuiz(ctx, "text", 5)
	require.ErrorIs(t, err, context.Canceled)

	var timeout *ErrTimeout
	assert.False(t, errors.As(err, &timeout))
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestGenerateSummary_Sections(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-summary", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"sections": []map[string]any{{
			"title":   "Les sources des obligations",
			"content": "Le contrat, le quasi-contrat, le délit.",
			"keyTerms": []map[string]any{{
				"term": "Obligation", "definition": "Lien de droit", "definitionDarija": "رابطة قانونية",
			}},
			"essentialPoints": []string{"Article 1 du DOC"},
		}}})
	})

	sections, err := c.GenerateSummary(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Les sources des obligations", sections[0].Title)
	assert.Equal(t, "رابطة قانونية", sections[0].KeyTerms[0].DefinitionDarija)
	assert.Equal(t, []string{"Article 1 du DOC"}, sections[0].EssentialPoints)
}

func TestGenerateSummary_EmptyResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"sections": []any{}})
	})

	_, err := c.GenerateSummary(context.Background(), "text")
	var empty *ErrEmptyResult
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, OpGenerateSummary, empty.Op)
}

func TestGenerateSummary_FallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GenerateSummary(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, "Summary generation failed", err.Error())
}

func TestErrTimeout_Message(t *testing.T) {
	err := &ErrTimeout{Op: OpUpload, After: 60 * time.Second, Hint: uploadEndpoint.hint}
	assert.True(t, strings.HasPrefix(err.Error(), "Upload timed out after 60 seconds."))
	assert.Contains(t, err.Error(), "too large")
}

// truncatedReply answers 200 with a Content-Length it never honours, then
// drops the connection mid-body.
func truncatedReply(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"questions": [`))
		w.(http.Flusher).Flush()

		conn, _, err := w.(http.Hijacker).Hijack()
		if !assert.NoError(t, err) {
			return
		}
		_ = conn.Close()
	}
}

func TestGenerateQuiz_TruncatedBodyIsInvalidResponse(t *testing.T) {
	c, hits := newTestClient(t, truncatedReply(t))

	_, err := c.GenerateQuiz(context.Background(), "text", 5)

	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, OpGenerateQuiz, invalid.Op)

	var conn *ErrConnection
	assert.False(t, errors.As(err, &conn), "an answered request is not a connection failure")
	assert.NotContains(t, err.Error(), "Cannot connect")
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestNewService_TruncatedBodyNotResent(t *testing.T) {
	var hits int32
	handler := truncatedReply(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Retry.MaxAttempts = 3
	cfg.Retry.InitialWait = time.Millisecond
	svc, err := NewService(cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.GenerateQuiz(context.Background(), "text", 5)
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGenerateQuiz_CallerDeadlineReported(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	_, err := c.GenerateQuiz(ctx, "text", 5)
	var timeout *ErrTimeout
	require.ErrorAs(t, err, &timeout)
	assert.LessOrEqual(t, timeout.After, 80*time.Millisecond)
	assert.Greater(t, timeout.After, time.Duration(0))
	assert.NotContains(t, err.Error(), "60 seconds")
}

func TestErrTimeout_SubSecondBound(t *testing.T) {
	err := &ErrTimeout{Op: OpGenerateQuiz, After: 50 * time.Millisecond}
	assert.True(t, strings.HasPrefix(err.Error(), "Quiz generation timed out after 50ms."), err.Error())
	assert.NotContains(t, err.Error(), "0 seconds")

	err = &ErrTimeout{Op: OpGenerateQuiz, After: 1500 * time.Millisecond}
	assert.Contains(t, err.Error(), "after 1.5s.")
}
