package problem

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentType is the media type for Problem Details responses.
const ContentType = "application/problem+json"

// Mapper converts a domain or application error into a problem Detail.
type Mapper func(err error) (Detail, bool)

// Responder renders Problem Details responses through gin. Mappers translate
// domain errors; unknown errors fall back to an internal problem whose detail
// text is suppressed when hideInternal is set (production configuration).
type Responder struct {
	baseURI      string
	hideInternal bool
	mappers      []Mapper
}

// Option configures a Responder.
type Option func(*Responder)

// WithBaseURI prepends the URI to relative problem types.
func WithBaseURI(uri string) Option {
	return func(r *Responder) { r.baseURI = uri }
}

// WithInternalDetailHidden suppresses the detail text of internal problems.
func WithInternalDetailHidden(hidden bool) Option {
	return func(r *Responder) { r.hideInternal = hidden }
}

// WithMappers appends error mappers consulted before the default handling.
func WithMappers(mappers ...Mapper) Option {
	return func(r *Responder) { r.mappers = append(r.mappers, mappers...) }
}

// NewResponder builds a responder.
func NewResponder(opts ...Option) *Responder {
	r := &Responder{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Respond sends a problem Detail with the proper content type.
func (r *Responder) Respond(c *gin.Context, p Detail) {
	if r.baseURI != "" && len(p.Type) > 0 && p.Type[0] == '/' {
		p.Type = r.baseURI + p.Type
	}
	if p.Instance == "" {
		p.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentType)
	c.JSON(p.Status, p)
}

// RespondError converts an error to a problem Detail and responds. Mappers
// run first; errors that already are Details pass through; anything else is
// an internal problem.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if p, ok := mapper(err); ok {
			r.Respond(c, p)
			return
		}
	}
	var p Detail
	if errors.As(err, &p) {
		r.Respond(c, p)
		return
	}
	internal := Internal
	if !r.hideInternal {
		internal = internal.WithDetail(err.Error())
	}
	r.Respond(c, internal)
}
