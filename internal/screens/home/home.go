package home

import (
	"context"
	"errors"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/content"
	"github.com/abhisek/qrayti/internal/monitor"
	"github.com/abhisek/qrayti/internal/router"
	"github.com/abhisek/qrayti/internal/screen"
	"github.com/abhisek/qrayti/internal/screens/document"
	"github.com/abhisek/qrayti/internal/summary"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/layout"
)

// Deps are the collaborators the home screen hands down to the screens it
// opens.
type Deps struct {
	Service      api.Service
	Monitor      *monitor.Monitor
	Clipboard    summary.Clipboard
	Logger       *zap.Logger
	NumQuestions int

	// Demo opens the bundled sample course on start, skipping the upload.
	Demo bool
}

// HomeScreen is the root screen: backend status and document picker.
type HomeScreen struct {
	deps   Deps
	input components.PathInput

	ctx    context.Context
	cancel context.CancelFunc

	uploading    bool
	uploadID     string
	uploadName   string
	cancelUpload context.CancelFunc
	errMsg       string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Closer = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = summary.SystemClipboard{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &HomeScreen{
		deps:   deps,
		input:  components.NewPathInput("chemin/vers/cours.pdf"),
		ctx:    ctx,
		cancel: cancel,
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{h.input.Init()}
	if h.deps.Demo {
		cmds = append(cmds, h.open(content.Demo()))
	}
	return tea.Batch(cmds...)
}

func (h *HomeScreen) Title() string {
	return "Accueil"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.uploading {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Annuler"},
			{Key: "Ctrl+C", Description: "Quitter"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Envoyer"},
		{Key: "Ctrl+D", Description: "Démo"},
		{Key: "Ctrl+R", Description: "Vérifier"},
		{Key: "Ctrl+C", Description: "Quitter"},
	}
}

// Close cancels an upload in flight.
func (h *HomeScreen) Close() {
	h.cancel()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		return h.handleUploadDone(msg)

	case tea.KeyPressMsg:
		return h.handleKey(msg)
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if h.uploading {
			h.abortUpload()
		}
		return h, nil
	case "ctrl+d":
		if h.uploading {
			return h, nil
		}
		return h, h.open(content.Demo())
	case "enter":
		if h.uploading {
			return h, nil
		}
		return h.submit()
	}

	if h.uploading {
		return h, nil
	}
	h.errMsg = ""
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// status returns the latest backend status. Probing is driven by the
// app so it keeps running while other screens are on top.
func (h *HomeScreen) status() monitor.Status {
	if h.deps.Monitor == nil {
		return monitor.Status{}
	}
	return h.deps.Monitor.Current()
}

// submit validates the entered path locally and starts the upload.
func (h *HomeScreen) submit() (screen.Screen, tea.Cmd) {
	path := h.input.Path()
	if path == "" {
		h.input.SetError("Entrez le chemin d'un document.")
		return h, nil
	}

	doc, err := content.Open(path)
	if err != nil {
		h.input.SetError(describeOpenError(err))
		return h, nil
	}

	id := uuid.New().String()
	ctx, cancel := context.WithCancel(api.WithSessionID(h.ctx, id))
	h.uploading = true
	h.uploadID = id
	h.uploadName = doc.Name
	h.cancelUpload = cancel
	h.errMsg = ""

	svc := h.deps.Service
	return h, func() tea.Msg {
		defer cancel()
		rc, err := svc.Upload(ctx, doc)
		return uploadDoneMsg{ID: id, Content: rc, Err: err}
	}
}

func (h *HomeScreen) abortUpload() {
	if h.cancelUpload != nil {
		h.cancelUpload()
	}
	h.deps.Logger.Debug("upload cancelled", zap.String("session_id", h.uploadID))
	h.uploading = false
	h.uploadID = ""
	h.cancelUpload = nil
}

func (h *HomeScreen) handleUploadDone(msg uploadDoneMsg) (screen.Screen, tea.Cmd) {
	if !h.uploading || msg.ID != h.uploadID {
		return h, nil
	}
	h.uploading = false
	h.uploadID = ""
	h.cancelUpload = nil

	if msg.Err != nil {
		h.errMsg = msg.Err.Error()
		return h, nil
	}
	return h, h.open(*msg.Content)
}

// open pushes the document screen for rc.
func (h *HomeScreen) open(rc api.RemoteContent) tea.Cmd {
	doc := document.New(document.Deps{
		Service:      h.deps.Service,
		Clipboard:    h.deps.Clipboard,
		Logger:       h.deps.Logger,
		NumQuestions: h.deps.NumQuestions,
	}, rc)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: doc}
	}
}

func describeOpenError(err error) string {
	var verr *api.ErrValidation
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, os.ErrNotExist):
		return "Fichier introuvable."
	case errors.Is(err, content.ErrNotAFile):
		return "Ce chemin n'est pas un fichier."
	case errors.Is(err, os.ErrPermission):
		return "Accès refusé à ce fichier."
	}
	return err.Error()
}
