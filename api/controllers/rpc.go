package controllers

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/stationdesk-backend/api/middleware"
	"github.com/angelmondragon/stationdesk-backend/api/responses"
	"github.com/angelmondragon/stationdesk-backend/api/validators"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

// Access is the gate a procedure sits behind.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

// Kind separates read-only queries from mutations. Queries may be called
// with GET and ?input=; mutations require POST.
type Kind int

const (
	Query Kind = iota
	Mutation
)

// Procedure binds a namespace.procedure name to its handler.
type Procedure struct {
	Name    string
	Kind    Kind
	Access  Access
	Handler http.HandlerFunc
}

// Registry dispatches /api/rpc/{procedure} calls.
type Registry struct {
	logg  *logger.Logger
	procs map[string]http.Handler
}

func NewRegistry(logg *logger.Logger) *Registry {
	return &Registry{logg: logg, procs: map[string]http.Handler{}}
}

// Register adds procedures, wrapping each in its method and access guards.
// Registering the same name twice panics at startup.
func (reg *Registry) Register(procs ...Procedure) {
	for _, p := range procs {
		if _, dup := reg.procs[p.Name]; dup {
			panic("duplicate procedure " + p.Name)
		}
		var h http.Handler = p.Handler
		switch p.Access {
		case Authenticated:
			h = middleware.RequireAuth(reg.logg)(h)
		case Admin:
			h = middleware.RequireRole(reg.logg, enums.UserRoleAdmin)(h)
		}
		reg.procs[p.Name] = reg.methodGuard(p.Kind, h)
	}
}

// Known reports whether name is a registered procedure.
func (reg *Registry) Known(name string) bool {
	_, ok := reg.procs[name]
	return ok
}

// Names lists the registered procedures in sorted order.
func (reg *Registry) Names() []string {
	out := make([]string, 0, len(reg.procs))
	for name := range reg.procs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (reg *Registry) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, middleware.ProcedureParam)
	h, ok := reg.procs[name]
	if !ok {
		responses.WriteError(r.Context(), reg.logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "procedure not found").
			WithDetails(map[string]any{"procedure": name}))
		return
	}
	if reg.logg != nil {
		r = r.WithContext(reg.logg.WithProcedure(r.Context(), name))
	}
	h.ServeHTTP(w, r)
}

func (reg *Registry) methodGuard(kind Kind, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
		case r.Method == http.MethodGet && kind == Query:
		default:
			responses.WriteError(r.Context(), reg.logg, w, pkgerrors.New(pkgerrors.CodeValidation, "mutations must be sent with POST"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handle decodes and validates the procedure input, runs fn and writes the
// success envelope.
func handle[In any, Out any](logg *logger.Logger, fn func(ctx context.Context, in In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := validators.DecodeInput(r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := fn(r.Context(), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// handleNoInput serves procedures that take no input.
func handleNoInput[Out any](logg *logger.Logger, fn func(ctx context.Context) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
