package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"runtime/debug"

	"github.com/google/uuid"
	"src.smolcalc.dev/pkg/front"
	"src.smolcalc.dev/pkg/mode"
	"src.smolcalc.dev/pkg/share"
	"src.smolcalc.dev/pkg/typeset"
)

//go:embed page
var embedded embed.FS

// Maximum size of an evaluation request body.
const maxRequestSize = 64 << 10

// EvaluateRequest is the body of a POST to /api/evaluate.
type EvaluateRequest struct {
	// Location is the address of the page, whose fragment selects the mode
	// and whose query enables typesetting. If empty, an address is built
	// from Mode and Typeset.
	Location string `json:"location"`
	Mode     string `json:"mode"`
	Typeset  bool   `json:"typeset"`
	Text     string `json:"text"`
}

// EvaluateResponse is the response to a POST to /api/evaluate.
type EvaluateResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"`
	Share  string `json:"share"`
	// Typeset is the MathML rendering of the input, or empty if the typeset
	// surface is hidden.
	Typeset string `json:"typeset"`
}

// NewHandler returns the handler of the web front-end. Pages are served from
// assets, or from the embedded page if assets is nil.
func NewHandler(registry *mode.Registry, assets fs.FS) http.Handler {
	if assets == nil {
		assets, _ = fs.Sub(embedded, "page")
	}
	h := &handler{
		registry: registry,
		mathml:   typeset.Loader{}.Load(context.Background(), true),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)
	mux.Handle("/", http.FileServer(http.FS(assets)))
	return withRequestID(mux)
}

type handler struct {
	registry *mode.Registry
	mathml   typeset.Renderer
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req EvaluateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestSize)).Decode(&req); err != nil {
		http.Error(w, "cannot decode request: "+err.Error(), http.StatusBadRequest)
		return
	}
	loc, err := requestLocation(r, req)
	if err != nil {
		http.Error(w, "bad location: "+err.Error(), http.StatusBadRequest)
		return
	}

	page := &front.Recorder{Text: req.Text}
	o := front.Orchestrator{Registry: h.registry, Typesetter: typeset.Nop{}}
	if share.ParseQuery(loc.RawQuery).Typeset {
		o.Typesetter = h.mathml
	}
	if err := o.Evaluate(front.Fixed{URL: loc}, page); err != nil {
		logger.Printf("%s: evaluator fault: %v", requestID(r), err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(EvaluateResponse{
		ID: requestID(r), Result: page.Result, Share: page.Share, Typeset: page.Typeset})
	if err != nil {
		logger.Printf("%s: cannot write response: %v", requestID(r), err)
	}
}

// Returns the address of the page an evaluation request comes from.
func requestLocation(r *http.Request, req EvaluateRequest) (*url.URL, error) {
	if req.Location != "" {
		return url.Parse(req.Location)
	}
	m, _ := mode.Parse(req.Mode)
	loc := &url.URL{Scheme: "http", Host: r.Host, Path: "/", Fragment: m.Token()}
	if r.TLS != nil {
		loc.Scheme = "https"
	}
	if req.Typeset {
		loc.RawQuery = share.Query{Typeset: true}.Encode()
	}
	return loc, nil
}

type requestIDKey struct{}

// Tags each request with a random ID, echoed in the X-Request-Id header, and
// turns panics into 500 responses.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
		defer func() {
			if v := recover(); v != nil {
				logger.Printf("%s: panic: %v\n%s", id, v, debug.Stack())
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		logger.Printf("%s: %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}
