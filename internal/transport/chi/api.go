package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ListFAQParams defines parameters for ListFAQ.
type ListFAQParams struct {
	Category *string
	Search   *string
	Limit    *int
}

// SearchFAQParams defines parameters for SearchFAQ.
type SearchFAQParams struct {
	Q     string
	Limit *int
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /api/categories)
	ListCategories(w http.ResponseWriter, r *http.Request)
	// (GET /api/faq)
	ListFAQ(w http.ResponseWriter, r *http.Request, params ListFAQParams)
	// (GET /api/faq/{id})
	GetFAQ(w http.ResponseWriter, r *http.Request, id string)
	// (GET /api/search)
	SearchFAQ(w http.ResponseWriter, r *http.Request, params SearchFAQParams)
	// (GET /api/preferences/{user_id})
	GetPreferences(w http.ResponseWriter, r *http.Request, userID string)
	// (PUT /api/preferences/{user_id})
	PutPreferences(w http.ResponseWriter, r *http.Request, userID string)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// serverInterfaceWrapper binds request parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) ListFAQ(w http.ResponseWriter, r *http.Request) {
	var params ListFAQParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "category", q, &params.Category); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "category", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", q, &params.Search); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "search", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.handler.ListFAQ(w, r, params)
}

func (siw *serverInterfaceWrapper) GetFAQ(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPathParam("id", chi.URLParam(r, "id"), &id); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.handler.GetFAQ(w, r, id)
}

func (siw *serverInterfaceWrapper) SearchFAQ(w http.ResponseWriter, r *http.Request) {
	var params SearchFAQParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "q", q, &params.Q); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.handler.SearchFAQ(w, r, params)
}

func (siw *serverInterfaceWrapper) GetPreferences(w http.ResponseWriter, r *http.Request) {
	var userID string
	if err := bindPathParam("user_id", chi.URLParam(r, "user_id"), &userID); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "user_id", Err: err})
		return
	}

	siw.handler.GetPreferences(w, r, userID)
}

func (siw *serverInterfaceWrapper) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var userID string
	if err := bindPathParam("user_id", chi.URLParam(r, "user_id"), &userID); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "user_id", Err: err})
		return
	}

	siw.handler.PutPreferences(w, r, userID)
}

func bindPathParam(name, value string, dest *string) error {
	return runtime.BindStyledParameterWithOptions("simple", name, value, dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
}

// HandlerWithOptions mounts every route of si on options.BaseRouter (a new router if nil).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = BadRequestHandler
	}

	wrapper := serverInterfaceWrapper{
		handler:          si,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}

	base := options.BaseURL
	r.Group(func(r chi.Router) {
		r.Get(base+"/api/health", si.HealthCheck)
		r.Get(base+"/api/categories", si.ListCategories)
		r.Get(base+"/api/faq", wrapper.ListFAQ)
		r.Get(base+"/api/faq/{id}", wrapper.GetFAQ)
		r.Get(base+"/api/search", wrapper.SearchFAQ)
		r.Get(base+"/api/preferences/{user_id}", wrapper.GetPreferences)
		r.Put(base+"/api/preferences/{user_id}", wrapper.PutPreferences)
		r.Get(base+"/metrics", si.Metrics)
	})

	return r
}

// BadRequestHandler writes parameter binding failures as a 400 JSON error.
func BadRequestHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
}
