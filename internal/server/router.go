package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"runtime/debug"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tidwall/gjson"

	"github.com/pefman/bg-localsim/internal/game"
	"github.com/pefman/bg-localsim/internal/models"
)

//go:embed builder.html
var builderHTML []byte

// DefaultMaxBodyBytes caps /simulate request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Simulations runs simulations against the external simulator.
type Simulations interface {
	SimulateLive(ctx context.Context, opts models.SimOptions) (*models.SimResult, error)
	SimulateCustom(ctx context.Context, in *game.Input, opts models.SimOptions) (*models.SimResult, error)
}

// Match reports on the running game.
type Match interface {
	IsInBattlegrounds() bool
}

// Translator converts caller snapshots into simulator input.
type Translator interface {
	Translate(snapshot *models.BattleSnapshot) (*game.Input, error)
}

// Cards serves the cached card listing.
type Cards interface {
	CardsJSON() []byte
}

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Sims         Simulations
	Match        Match
	Translator   Translator
	Cards        Cards
	Gate         *Gate
	MaxBodyBytes int64
}

type handlers struct {
	Deps
}

// NewRouter builds the local API handler. Paths are matched
// case-insensitively with trailing slashes ignored; methods fold case.
func NewRouter(d Deps) http.Handler {
	if d.Gate == nil {
		d.Gate = NewGate()
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = DefaultMaxBodyBytes
	}
	h := &handlers{Deps: d}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health)
	r.HandleFunc("/", h.builder).Methods(http.MethodGet)
	r.HandleFunc("/builder", h.builder).Methods(http.MethodGet)
	r.HandleFunc("/cards", h.cards).Methods(http.MethodGet)
	r.HandleFunc("/simulate/from-current", h.wrap(h.simulateCurrent)).Methods(http.MethodGet)
	r.HandleFunc("/simulate", h.wrap(h.simulate)).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed)
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound)
	})

	return normalizeRequest(recoverPanics(r))
}

// normalizeRequest lower-cases and trims the path and upper-cases the
// method before routing.
func normalizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + strings.ToLower(r.URL.Path))
		r2 := new(http.Request)
		*r2 = *r
		u := *r.URL
		u.Path, u.RawPath = p, ""
		r2.URL = &u
		r2.Method = strings.ToUpper(r.Method)
		next.ServeHTTP(w, r2)
	})
}

// recoverPanics turns a handler panic into server_error so one bad
// request never takes down the listener.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				log.Printf("panic handling %s %s: %v\n%s", r.Method, r.URL.Path, v, debug.Stack())
				writeError(w, http.StatusInternalServerError, codeServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// wrap reports unexpected handler errors as server_error. Errors caused by
// the request going away are logged without a response.
func (h *handlers) wrap(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if r.Context().Err() != nil {
			log.Printf("%s %s cancelled: %v", r.Method, r.URL.Path, err)
			return
		}
		log.Printf("error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, codeServerError)
	}
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) builder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(builderHTML)
}

func (h *handlers) cards(w http.ResponseWriter, r *http.Request) {
	writeRawJSON(w, http.StatusOK, h.Cards.CardsJSON())
}

func (h *handlers) simulateCurrent(w http.ResponseWriter, r *http.Request) error {
	if h.Match == nil || !h.Match.IsInBattlegrounds() {
		writeError(w, http.StatusBadRequest, codeNotInBattlegrounds)
		return nil
	}
	opts := parseSimOptions(r.URL.Query())

	release, err := h.Gate.Acquire(r.Context())
	if err != nil {
		return fmt.Errorf("acquire simulation gate: %w", err)
	}
	defer release()

	res, err := h.Sims.SimulateLive(r.Context(), opts)
	return h.writeResult(w, r, res, err)
}

func (h *handlers) simulate(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, codeInvalidBody)
			return nil
		}
		return fmt.Errorf("read body: %w", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, http.StatusBadRequest, codeEmptyBody)
		return nil
	}
	snapshot, ok := decodeSnapshot(body)
	if !ok {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return nil
	}
	opts := parseSimOptions(r.URL.Query())

	release, err := h.Gate.Acquire(r.Context())
	if err != nil {
		return fmt.Errorf("acquire simulation gate: %w", err)
	}
	defer release()

	in, err := h.Translator.Translate(snapshot)
	if err != nil {
		log.Printf("translate snapshot: %v", err)
		writeError(w, http.StatusInternalServerError, codeSimulationFailed)
		return nil
	}
	res, err := h.Sims.SimulateCustom(r.Context(), in, opts)
	return h.writeResult(w, r, res, err)
}

func (h *handlers) writeResult(w http.ResponseWriter, r *http.Request, res *models.SimResult, err error) error {
	if err != nil && r.Context().Err() != nil {
		return err
	}
	if err != nil || res == nil {
		log.Printf("simulation failed: %v", err)
		writeError(w, http.StatusInternalServerError, codeSimulationFailed)
		return nil
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// decodeSnapshot accepts only a JSON object that decodes into a snapshot.
func decodeSnapshot(body []byte) (*models.BattleSnapshot, bool) {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, false
	}
	var snapshot models.BattleSnapshot
	if err := models.DecodeLenient(body, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}
