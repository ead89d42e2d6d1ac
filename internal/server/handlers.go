package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexiusacademia/goframe/internal/beam"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/linalg"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/repo"
	"github.com/alexiusacademia/goframe/internal/report"
	"github.com/alexiusacademia/goframe/internal/version"
)

// maxBody caps the size of an input document
const maxBody = 4 << 20

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}

// classify maps an analysis or store error to its HTTP status and kind
func classify(err error) (int, string) {
	var ie *model.InputError
	switch {
	case errors.As(err, &ie):
		return http.StatusBadRequest, "input"
	case errors.Is(err, model.ErrUnstableStructure):
		return http.StatusUnprocessableEntity, "unstable"
	case errors.Is(err, linalg.ErrSingularMatrix):
		return http.StatusUnprocessableEntity, "singular"
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}

func fail(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	writeError(w, status, kind, err.Error())
}

// Handler serves the analysis API. Store may be nil.
type Handler struct {
	Store repo.Repository
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"store":   h.Store != nil,
	})
}

func readBeam(w http.ResponseWriter, r *http.Request) (*model.BeamDocument, error) {
	return model.ReadBeamDocument(http.MaxBytesReader(w, r.Body, maxBody))
}

func readFrame(w http.ResponseWriter, r *http.Request) (*model.FrameDocument, error) {
	return model.ReadFrameDocument(http.MaxBytesReader(w, r.Body, maxBody))
}

func (h *Handler) SolveBeam(w http.ResponseWriter, r *http.Request) {
	doc, err := readBeam(w, r)
	if err != nil {
		fail(w, err)
		return
	}
	res, err := beam.NewSolver(doc).Solve()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) SolveFrame(w http.ResponseWriter, r *http.Request) {
	doc, err := readFrame(w, r)
	if err != nil {
		fail(w, err)
		return
	}
	res, err := frame.NewSolver(doc).Solve()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// BeamEnvelope solves every combination of the table named by the
// "table" query parameter (nscp by default)
func (h *Handler) BeamEnvelope(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("table")
	if name == "" {
		name = "nscp"
	}
	combos, ok := nscp.Table(name)
	if !ok {
		writeError(w, http.StatusBadRequest, "input", "unknown combination table "+strconv.Quote(name))
		return
	}
	doc, err := readBeam(w, r)
	if err != nil {
		fail(w, err)
		return
	}
	env, err := nscp.BeamEnvelope(doc, combos)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func writePDF(w http.ResponseWriter, name string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("writing pdf: %v", err)
	}
}

func (h *Handler) BeamReport(w http.ResponseWriter, r *http.Request) {
	doc, err := readBeam(w, r)
	if err != nil {
		fail(w, err)
		return
	}
	res, err := beam.NewSolver(doc).Solve()
	if err != nil {
		fail(w, err)
		return
	}
	writePDF(w, "beam-report.pdf", func(out io.Writer) error {
		return report.WriteBeamPDF(out, "", res)
	})
}

func (h *Handler) FrameReport(w http.ResponseWriter, r *http.Request) {
	doc, err := readFrame(w, r)
	if err != nil {
		fail(w, err)
		return
	}
	res, err := frame.NewSolver(doc).Solve()
	if err != nil {
		fail(w, err)
		return
	}
	writePDF(w, "frame-report.pdf", func(out io.Writer) error {
		return report.WriteFramePDF(out, "", res)
	})
}

type createProject struct {
	Name     string          `json:"name"`
	Kind     repo.Kind       `json:"kind"`
	Document json.RawMessage `json:"document"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in createProject
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "input", "invalid request payload: "+err.Error())
		return
	}
	// the document must at least decode for its solver
	var err error
	switch in.Kind {
	case repo.KindBeam:
		_, err = model.ReadBeamDocument(bytes.NewReader(in.Document))
	case repo.KindFrame:
		_, err = model.ReadFrameDocument(bytes.NewReader(in.Document))
	default:
		err = model.Inputf("kind must be %q or %q, got %q", repo.KindBeam, repo.KindFrame, in.Kind)
	}
	if err != nil {
		fail(w, err)
		return
	}

	id, err := h.Store.CreateProject(r.Context(), &repo.Project{Name: in.Name, Kind: in.Kind, Document: in.Document})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	if projects == nil {
		projects = []repo.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func projectID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, model.Inputf("invalid project id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		fail(w, err)
		return
	}
	p, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.Store.DeleteProject(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SolveProject solves the stored document and stores the result with it
func (h *Handler) SolveProject(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		fail(w, err)
		return
	}
	p, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}

	var res any
	switch p.Kind {
	case repo.KindFrame:
		doc, err := model.ReadFrameDocument(bytes.NewReader(p.Document))
		if err != nil {
			fail(w, err)
			return
		}
		res, err = frame.NewSolver(doc).Solve()
		if err != nil {
			fail(w, err)
			return
		}
	default:
		doc, err := model.ReadBeamDocument(bytes.NewReader(p.Document))
		if err != nil {
			fail(w, err)
			return
		}
		res, err = beam.NewSolver(doc).Solve()
		if err != nil {
			fail(w, err)
			return
		}
	}

	raw, err := json.Marshal(res)
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.Store.SaveResult(r.Context(), id, raw); err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}
