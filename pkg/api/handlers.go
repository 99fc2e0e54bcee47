package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ringstack/pkg/buildinfo"
	"github.com/matzehuels/ringstack/pkg/errors"
	"github.com/matzehuels/ringstack/pkg/inference"
	"github.com/matzehuels/ringstack/pkg/pipeline"
	"github.com/matzehuels/ringstack/pkg/resonator"
	"github.com/matzehuels/ringstack/pkg/sink"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type stackResponse struct {
	Seed        *uint64         `json:"seed,omitempty"`
	Truncated   bool            `json:"truncated"`
	Requested   int             `json:"requested"`
	Overlapping []int           `json:"overlapping,omitempty"`
	Stack       resonator.Stack `json:"stack"`
}

type designRequest struct {
	Features inference.Features `json:"features"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleStacks(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.Runner.SampleWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)

	out := stackResponse{
		Truncated:   res.Truncated,
		Requested:   res.Requested,
		Overlapping: res.Stack.Overlapping(),
		Stack:       res.Stack,
	}
	if opts.Stack == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = pipeline.DefaultSeed
		}
		out.Seed = &seed
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheInfo.RenderHit)

	data := res.Artifacts[format]
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="ringstack-%s.%s"`, res.StackHash[:12], sink.Extension(format)))
	w.Header().Set("X-Run-ID", res.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	res, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Run-ID", res.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

func (s *Server) handleDesign(w http.ResponseWriter, r *http.Request) {
	if s.Model == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no inference model configured"))
		return
	}
	var req designRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	stack, err := inference.Design(r.Context(), s.Model, req.Features)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n := stack.Len()
	writeJSON(w, http.StatusOK, stackResponse{Requested: n, Overlapping: stack.Overlapping(), Stack: stack})
}

func decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := decodeJSON(w, r, &opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// decodeJSON reads a JSON body into v. An empty body leaves v unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}
